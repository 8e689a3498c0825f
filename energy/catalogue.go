package energy

// orde canónica das columnas de tipo de enerxía
var categoryColumns = []string{string(Renewable), string(NonRenewable)}

// Sectors offered by the per-sector consumption tabs.
var Sectors = []string{"Industry", "Residential", "Transport"}

// Sections returns the dashboard menu: every section with its views, in
// display order.
func Sections() []Section {
	secs := sections()
	for i := range secs {
		for j := range secs[i].Views {
			secs[i].Views[j].Section = secs[i].ID
		}
	}
	return secs
}

func sections() []Section {
	return []Section{
		{ID: "diagnostico", Title: "Diagnóstico Nacional", Views: []ViewSpec{
			{
				ID: "renovable-anual", Title: "% Participación de Energía Renovable vs No Renovable",
				Source: SourceElectricity, Chart: ChartStackedBar, Unit: "%",
				UseCountry: true,
				GroupBy:    []DimensionID{DimYear, DimCategory}, Percent: true, ParentDepth: 1,
				Columns: categoryColumns,
			},
			{
				ID: "produccion-fuente", Title: "Producción por Fuente",
				Source: SourceElectricity, Chart: ChartBar, Unit: "GWh",
				UseCountry: true, UseYear: true,
				GroupBy: []DimensionID{DimProduct},
			},
			{
				ID: "distribucion-fuente", Title: "Distribución de Producción",
				Source: SourceElectricity, Chart: ChartPie, Unit: "%",
				UseCountry: true, UseYear: true,
				GroupBy: []DimensionID{DimProduct}, Percent: true,
			},
			{
				ID: "balance", Title: "Balance Energético",
				Source: SourceElectricity, Chart: ChartBar, Unit: "GWh",
				UseCountry: true, UseYear: true,
				GroupBy: []DimensionID{DimBalance},
			},
			{
				ID: "comparativo-fuentes", Title: "Comparativo de Fuentes de Energía por Año",
				Source: SourceElectricity, Chart: ChartLine, Unit: "GWh",
				Balance: NetProduction, UseCountry: true,
				GroupBy: []DimensionID{DimYear, DimProduct},
			},
			{
				ID: "diversificacion", Title: "Evolución Histórica de la Diversificación Energética",
				Source: SourceElectricity, Chart: ChartArea, Unit: "%",
				Balance: NetProduction, UseCountry: true,
				GroupBy: []DimensionID{DimYear, DimProduct}, Percent: true, ParentDepth: 1,
			},
			{
				ID: "tendencia-historica", Title: "Tendencia Histórica",
				Source: SourceElectricity, Chart: ChartLine, Unit: "GWh",
				Balance: NetProduction, UseCountry: true,
				GroupBy: []DimensionID{DimYear},
			},
		}},
		{ID: "internacional", Title: "Comparativos Internacionales", Views: []ViewSpec{
			{
				ID: "top-paises", Title: "Top Países por Producción",
				Source: SourceElectricity, Chart: ChartTreemap, Unit: "GWh",
				Balance: NetProduction, UseYear: true,
				GroupBy: []DimensionID{DimCountry}, Rank: true,
			},
			{
				ID: "renovable-paises", Title: "Participación Renovable por País",
				Source: SourceElectricity, Chart: ChartStackedBar, Unit: "%",
				Balance: NetProduction, UseYear: true,
				GroupBy: []DimensionID{DimCountry, DimCategory}, Percent: true, ParentDepth: 1,
				Columns: categoryColumns,
			},
			{
				ID: "fuente-global", Title: "Producción Global por Fuente",
				Source: SourceElectricity, Chart: ChartBar, Unit: "GWh",
				Balance: NetProduction, UseYear: true,
				GroupBy: []DimensionID{DimProduct},
			},
			{
				ID: "renovables-por-fuente", Title: "Energías Renovables",
				Source: SourceElectricity, Chart: ChartStackedBar, Unit: "GWh",
				Balance: NetProduction, Mode: ModeRenewable, UseCountry: true, UseYear: true,
				GroupBy: []DimensionID{DimYear, DimProduct},
			},
			{
				ID: "no-renovables-por-fuente", Title: "Energías No Renovables",
				Source: SourceElectricity, Chart: ChartStackedBar, Unit: "GWh",
				Balance: NetProduction, Mode: ModeNonRenewable, UseCountry: true, UseYear: true,
				GroupBy: []DimensionID{DimYear, DimProduct},
			},
			{
				ID: "evolucion-paises", Title: "Evolución por País",
				Source: SourceElectricity, Chart: ChartLine, Unit: "GWh",
				Balance: NetProduction, TopCountries: true,
				GroupBy: []DimensionID{DimYear, DimCountry},
			},
			{
				ID: "mapa-jerarquico", Title: "Mapa Jerárquico Internacional",
				Source: SourceElectricity, Chart: ChartTreemap, Unit: "GWh",
				Balance: NetProduction, UseYear: true, TopCountries: true,
				GroupBy: []DimensionID{DimCountry, DimProduct},
			},
		}},
		{ID: "mensual", Title: "Tendencia Mensual", Views: []ViewSpec{
			{
				ID: "tendencia-mensual", Title: "Tendencia mensual de energía",
				Source: SourceElectricity, Chart: ChartLine, Unit: "GWh",
				Balance: NetProduction, UseCountry: true, UseMode: true,
				GroupBy: []DimensionID{DimMonth, DimCategory},
				Columns: categoryColumns,
			},
			{
				ID: "generacion-mensual", Title: "Generación mensual de energía",
				Source: SourceElectricity, Chart: ChartStackedBar, Unit: "GWh",
				Balance: NetProduction, UseCountry: true, UseMode: true,
				GroupBy: []DimensionID{DimMonth, DimCategory},
				Columns: categoryColumns,
			},
			{
				ID: "generacion-mes", Title: "Generación mensual del año",
				Source: SourceElectricity, Chart: ChartLine, Unit: "GWh",
				Balance: NetProduction, UseCountry: true, UseYear: true,
				GroupBy: []DimensionID{DimMonthOfYear},
			},
			{
				ID: "renovables-actuales", Title: "Fuentes renovables del año",
				Source: SourceElectricity, Chart: ChartBar, Unit: "GWh",
				Balance: NetProduction, Products: []string{"Solar", "Wind", "Hydro"},
				UseCountry: true, UseYear: true,
				GroupBy: []DimensionID{DimProduct},
			},
		}},
		{ID: "sectorial", Title: "Análisis Sectorial", Views: []ViewSpec{
			{
				ID: "consumo-sector", Title: "Consumo por Sector",
				Source: SourceConsumption, Chart: ChartBar, Unit: "GWh",
				UseCountry: true, UseYear: true,
				GroupBy: []DimensionID{DimProduct},
			},
			{
				ID: "consumo-sector-anual", Title: "Comparativo de Consumo por Sector y Año",
				Source: SourceConsumption, Chart: ChartLine, Unit: "GWh",
				UseCountry: true,
				GroupBy:    []DimensionID{DimYear, DimProduct},
			},
			{
				ID: "consumo-diversificacion", Title: "Evolución Histórica del Consumo por Sector",
				Source: SourceConsumption, Chart: ChartArea, Unit: "GWh",
				UseCountry: true,
				GroupBy:    []DimensionID{DimYear, DimProduct},
			},
			{
				ID: "consumo-participacion", Title: "Participación del Consumo por Sector",
				Source: SourceConsumption, Chart: ChartPie, Unit: "%",
				UseCountry: true, UseYear: true,
				GroupBy: []DimensionID{DimProduct}, Percent: true,
			},
			{
				ID: "consumo-paises", Title: "Participación por Sector y País",
				Source: SourceConsumption, Chart: ChartStackedBar, Unit: "%",
				UseYear: true,
				GroupBy: []DimensionID{DimCountry, DimProduct}, Percent: true, ParentDepth: 1,
			},
			{
				ID: "sector-tendencia", Title: "Evolución del Consumo del Sector",
				Source: SourceConsumption, Chart: ChartLine, Unit: "GWh",
				UseCountry: true, UseSector: true,
				GroupBy: []DimensionID{DimYear},
			},
		}},
		{ID: "climatico", Title: "Análisis Climático", Views: []ViewSpec{
			{
				ID: "emisiones-sector", Title: "Evolución de las Emisiones de CO₂ por Sector",
				Source: SourceEmissions, Chart: ChartLine, Unit: "Mt CO₂",
				UseCountry: true,
				GroupBy:    []DimensionID{DimYear, DimProduct},
			},
			{
				ID: "emisiones-participacion", Title: "Participación Porcentual de las Emisiones de CO₂ por Sector",
				Source: SourceEmissions, Chart: ChartArea, Unit: "%",
				UseCountry: true,
				GroupBy:    []DimensionID{DimYear, DimProduct}, Percent: true, ParentDepth: 1,
			},
			{
				ID: "emisiones-anio", Title: "Emisiones de CO₂ por Sector",
				Source: SourceEmissions, Chart: ChartBar, Unit: "Mt CO₂",
				UseCountry: true, UseYear: true,
				GroupBy: []DimensionID{DimProduct},
			},
		}},
	}
}

// Catalogue returns every view, with Section filled in, in menu order.
func Catalogue() []ViewSpec {
	var out []ViewSpec
	for _, s := range Sections() {
		out = append(out, s.Views...)
	}
	return out
}

// Lookup finds a view by ID.
func Lookup(id string) (ViewSpec, bool) {
	for _, v := range Catalogue() {
		if v.ID == id {
			return v, true
		}
	}
	return ViewSpec{}, false
}
