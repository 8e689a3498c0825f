package main

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/mattn/go-sqlite3"
	"golang.org/x/text/unicode/norm"

	"tereborace.com/enerxia/energy"
)

// ==== Datos e utilidades SQL ====
type Column struct{ Name, Type string }

// driver propio: cada conexión nova do pool rexistra unaccent_lower e queda en só lectura
const sqliteDriver = "sqlite3_enerxia"

func init() {
	sql.Register(sqliteDriver, &sqlite3.SQLiteDriver{
		ConnectHook: func(c *sqlite3.SQLiteConn) error {
			if err := c.RegisterFunc("unaccent_lower", unaccentLower, true); err != nil {
				return err
			}
			// Read-only reforzado a nivel de sesión
			_, err := c.Exec("PRAGMA query_only = ON", nil)
			return err
		},
	})
}

// ColNames devolve só os nomes das columnas.
func ColNames(cols []Column) []string {
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		out = append(out, c.Name)
	}
	return out
}

// asciiFold elimina diacríticos e pasa a minúsculas.
func asciiFold(s string) string {
	// Normalizamos a NFD e eliminamos marcas (Mn)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue // descarta a marca diacrítica
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// unaccent_lower(text) -> text
func unaccentLower(s any) any {
	switch v := s.(type) {
	case nil:
		return ""
	case string:
		return asciiFold(v)
	case []byte:
		return asciiFold(string(v))
	default:
		return asciiFold(fmt.Sprint(v))
	}
}

func openSQLite(dbPath string) (*sql.DB, error) {
	// sqlite crea o ficheiro se non existe; aquí só lemos
	if _, err := os.Stat(dbPath); err != nil {
		return nil, err
	}
	db, err := sql.Open(sqliteDriver, dbPath)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func listTables(db *sql.DB) ([]string, error) {
	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	tables := []string{}
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		tables = append(tables, n)
	}
	return tables, rows.Err()
}

func tableColumns(db *sql.DB, table string) ([]Column, error) {
	q := fmt.Sprintf("PRAGMA table_info(%s)", quoteIdent(table))
	rows, err := db.Query(q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []Column{}
	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull int
		var dflt *string
		var pk int
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return nil, err
		}
		res = append(res, Column{Name: name, Type: ctype})
	}
	return res, rows.Err()
}

// devolve true se existe a táboa
func tableExists(db *sql.DB, name string) bool {
	var n int
	_ = db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	return n > 0
}

// escolle a primeira columna dispoñible na táboa (case-insensitive)
func pickFirstColumnName(cols []Column, candidates ...string) string {
	for _, want := range candidates {
		for _, c := range cols {
			if strings.EqualFold(c.Name, want) {
				return c.Name // devolvemos o nome exacto tal e como existe
			}
		}
	}
	return ""
}

// ==== Carga de rexistros ====

type loadOptions struct {
	DefaultCountry       string   // para táboas sen columna de país
	ExcludeCountriesLike []string // patróns LIKE (agregados tipo OECD, Total)
}

type loadStats struct {
	Rows    int
	Skipped int // períodos que non se puideron ler
}

// columnas da táboa que usa a carga
type recordColumns struct {
	country, product, period, value, balance string
}

func detectRecordColumns(cols []Column) (recordColumns, error) {
	rc := recordColumns{
		country: pickFirstColumnName(cols, "Country", "País", "Pais"),
		product: pickFirstColumnName(cols, "Product", "Sector", "Producto"),
		period:  pickFirstColumnName(cols, "Time", "Year", "Año", "Ano", "Fecha"),
		value:   pickFirstColumnName(cols, "Value", "Valor"),
		balance: pickFirstColumnName(cols, "Balance", "Flow"),
	}
	var missing []string
	if rc.product == "" {
		missing = append(missing, "Product/Sector")
	}
	if rc.period == "" {
		missing = append(missing, "Time/Year")
	}
	if rc.value == "" {
		missing = append(missing, "Value")
	}
	if len(missing) > 0 {
		return rc, fmt.Errorf("faltan columnas: %s", strings.Join(missing, ", "))
	}
	return rc, nil
}

// loadRecords le unha táboa completa como []energy.Record.
// Descarta valores NULL e períodos ilexibles (contados en loadStats.Skipped).
func loadRecords(db *sql.DB, table string, opts loadOptions) ([]energy.Record, loadStats, error) {
	var st loadStats
	cols, err := tableColumns(db, table)
	if err != nil {
		return nil, st, err
	}
	rc, err := detectRecordColumns(cols)
	if err != nil {
		return nil, st, fmt.Errorf("táboa %s: %w", table, err)
	}

	colOrEmpty := func(name string) string {
		if name == "" {
			return "''"
		}
		return "CAST(" + quoteIdent(name) + " AS TEXT)"
	}

	where := []string{quoteIdent(rc.value) + " IS NOT NULL", "TRIM(CAST(" + quoteIdent(rc.value) + " AS TEXT)) <> ''"}
	var args []any
	if rc.country != "" {
		for _, pat := range opts.ExcludeCountriesLike {
			where = append(where, quoteIdent(rc.country)+" NOT LIKE ?")
			args = append(args, pat)
		}
	}

	q := fmt.Sprintf(`
		SELECT %s, %s, %s, CAST(%s AS REAL), %s
		FROM %s
		WHERE %s
	`,
		colOrEmpty(rc.country),
		colOrEmpty(rc.product),
		colOrEmpty(rc.period),
		quoteIdent(rc.value),
		colOrEmpty(rc.balance),
		quoteIdent(table),
		strings.Join(where, " AND "),
	)

	rows, err := db.Query(q, args...)
	if err != nil {
		return nil, st, err
	}
	defer rows.Close()

	out := []energy.Record{}
	for rows.Next() {
		var country, product, period, balance sql.NullString
		var value float64
		if err := rows.Scan(&country, &product, &period, &value, &balance); err != nil {
			return nil, st, err
		}
		year, month, err := energy.ParsePeriod(period.String)
		if err != nil {
			st.Skipped++
			continue
		}
		c := strings.TrimSpace(country.String)
		if c == "" {
			c = opts.DefaultCountry
		}
		out = append(out, energy.Record{
			Country:    c,
			Product:    strings.TrimSpace(product.String),
			TimePeriod: period.String,
			Year:       year,
			Month:      month,
			Value:      value,
			Balance:    strings.TrimSpace(balance.String),
		})
	}
	st.Rows = len(out)
	return out, st, rows.Err()
}

// searchCountries busca países sen ter en conta acentos nin maiúsculas.
func searchCountries(db *sql.DB, table, q string, limit int) ([]string, error) {
	cols, err := tableColumns(db, table)
	if err != nil {
		return nil, err
	}
	col := pickFirstColumnName(cols, "Country", "País", "Pais")
	if col == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}
	id := quoteIdent(col)
	sqlq := fmt.Sprintf(`
		SELECT DISTINCT %s
		FROM %s
		WHERE %s IS NOT NULL AND unaccent_lower(CAST(%s AS TEXT)) LIKE ?
		ORDER BY %s
		LIMIT %d
	`, id, quoteIdent(table), id, id, id, limit)

	rows, err := db.Query(sqlq, "%"+asciiFold(strings.TrimSpace(q))+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []string{}
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
