package main

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"tereborace.com/enerxia/energy"
)

const testElectricity = "Monthly_Electricity_Statistics"

// fixtureDB crea unha base de datos temporal (escribible) e devolve a ruta
func fixtureDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "balance_energetico.sqlite")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	stmts := []string{
		`CREATE TABLE "Monthly_Electricity_Statistics" (Country TEXT, Time TEXT, Balance TEXT, Product TEXT, Value REAL, Unit TEXT)`,
		`CREATE TABLE "consumo" ("Sector" TEXT, "Year" INTEGER, "Value" REAL)`,
	}
	for _, s := range stmts {
		_, err := db.Exec(s)
		require.NoError(t, err)
	}

	rows := []struct {
		country, period, balance, product string
		value                             any
	}{
		{"Colombia", "January 2023", energy.NetProduction, "Hydro", 80.0},
		{"Colombia", "January 2024", energy.NetProduction, "Hydro", 100.0},
		{"Colombia", "January 2024", energy.NetProduction, "Coal", 300.0},
		{"Colombia", "February 2024", energy.NetProduction, "Wind", 50.0},
		{"Colombia", "January 2024", energy.NetProduction, "Electricity", 450.0},
		{"Colombia", "January 2024", "Final Consumption", "Hydro", 70.0},
		{"Perú", "January 2024", energy.NetProduction, "Hydro", 40.0},
		{"OECD Total", "January 2024", energy.NetProduction, "Hydro", 9999.0},
		{"Colombia", "sen data", energy.NetProduction, "Hydro", 1.0},
		{"Colombia", "March 2024", energy.NetProduction, "Hydro", nil},
	}
	for _, r := range rows {
		_, err := db.Exec(`INSERT INTO "Monthly_Electricity_Statistics" VALUES (?, ?, ?, ?, ?, 'GWh')`,
			r.country, r.period, r.balance, r.product, r.value)
		require.NoError(t, err)
	}

	for _, r := range []struct {
		sector string
		year   int
		value  float64
	}{
		{"Industry", 2021, 10},
		{"Residential", 2021, 30},
		{"Industry", 2022, 12},
	} {
		_, err := db.Exec(`INSERT INTO "consumo" VALUES (?, ?, ?)`, r.sector, r.year, r.value)
		require.NoError(t, err)
	}
	return path
}

func openFixture(t *testing.T) *sql.DB {
	t.Helper()
	db, err := openSQLite(fixtureDB(t))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenSQLiteIsReadOnly(t *testing.T) {
	db := openFixture(t)
	_, err := db.Exec(`CREATE TABLE x (a INTEGER)`)
	require.Error(t, err)
	_, err = db.Exec(`DELETE FROM "Monthly_Electricity_Statistics"`)
	require.Error(t, err)
}

func TestOpenSQLiteMissingFile(t *testing.T) {
	_, err := openSQLite(filepath.Join(t.TempDir(), "non-existe.sqlite"))
	require.Error(t, err)
}

func TestListTablesAndColumns(t *testing.T) {
	db := openFixture(t)
	tables, err := listTables(db)
	require.NoError(t, err)
	require.Equal(t, []string{testElectricity, "consumo"}, tables)

	cols, err := tableColumns(db, testElectricity)
	require.NoError(t, err)
	require.Equal(t, []string{"Country", "Time", "Balance", "Product", "Value", "Unit"}, ColNames(cols))

	require.True(t, tableExists(db, "consumo"))
	require.False(t, tableExists(db, "emisions"))
}

func TestPickFirstColumnName(t *testing.T) {
	cols := []Column{{Name: "SECTOR"}, {Name: "year"}, {Name: "Value"}}
	require.Equal(t, "SECTOR", pickFirstColumnName(cols, "Product", "Sector"))
	require.Equal(t, "year", pickFirstColumnName(cols, "Time", "Year"))
	require.Empty(t, pickFirstColumnName(cols, "Country"))
}

func TestLoadRecords(t *testing.T) {
	db := openFixture(t)
	recs, st, err := loadRecords(db, testElectricity, loadOptions{ExcludeCountriesLike: []string{"%OECD%", "%Total%"}})
	require.NoError(t, err)

	// NULL fóra, período ilexible contado, OECD excluído
	require.Equal(t, 1, st.Skipped)
	require.Equal(t, 7, st.Rows)
	require.Len(t, recs, 7)
	require.Equal(t, []string{"Colombia", "Perú"}, energy.Countries(recs))
	require.Equal(t, []int{2023, 2024}, energy.Years(recs))

	for _, r := range recs {
		if r.Product == "Wind" {
			require.Equal(t, 2024, r.Year)
			require.Equal(t, 2, r.Month)
			require.Equal(t, 50.0, r.Value)
			require.Equal(t, energy.NetProduction, r.Balance)
		}
	}
}

func TestLoadRecordsDefaultCountry(t *testing.T) {
	db := openFixture(t)
	recs, st, err := loadRecords(db, "consumo", loadOptions{DefaultCountry: "Colombia", ExcludeCountriesLike: []string{"%OECD%"}})
	require.NoError(t, err)
	require.Zero(t, st.Skipped)
	require.Len(t, recs, 3)
	for _, r := range recs {
		require.Equal(t, "Colombia", r.Country)
		require.Empty(t, r.Balance)
		require.Zero(t, r.Month)
	}
	require.Equal(t, []string{"Industry", "Residential"}, energy.Products(recs))
}

func TestLoadRecordsMissingColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mal.sqlite")
	w, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = w.Exec(`CREATE TABLE t (Country TEXT, Product TEXT)`)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	db, err := openSQLite(path)
	require.NoError(t, err)
	defer db.Close()

	_, _, err = loadRecords(db, "t", loadOptions{})
	require.ErrorContains(t, err, "Time/Year")
	require.ErrorContains(t, err, "Value")
}

func TestSearchCountriesIgnoresAccents(t *testing.T) {
	db := openFixture(t)
	got, err := searchCountries(db, testElectricity, "PERU", 10)
	require.NoError(t, err)
	require.Equal(t, []string{"Perú"}, got)

	got, err = searchCountries(db, testElectricity, "col", 10)
	require.NoError(t, err)
	require.Equal(t, []string{"Colombia"}, got)

	// sen columna de país
	got, err = searchCountries(db, "consumo", "col", 10)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestAsciiFold(t *testing.T) {
	require.Equal(t, "peru", asciiFold("Perú"))
	require.Equal(t, "anos e camion", asciiFold("Años e Camión"))
	require.Equal(t, "", unaccentLower(nil))
	require.Equal(t, "12", unaccentLower(int64(12)))
}
