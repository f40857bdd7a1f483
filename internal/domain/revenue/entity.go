package revenue

import "time"

// Revenue kind tags. Direct revenue comes from billable project work,
// indirect from everything else; KPI profit sums both unless split.
const (
	KindDirect   = "Directo"
	KindIndirect = "Indirecto"
)

// Known activity labels from the finance side. Free-form labels are
// accepted too; the list only backs the UI dropdown.
var Activities = []string{
	"Envio",
	"Equipo",
	"Ingenieria de Control",
	"PLC",
	"Reparacion Servidores",
	"Servicio Electrico",
	"Servicio Redes",
	"Software (Licencias)",
	"Tableros",
	"Viaticos",
}

// ActivityRevenue is one revenue-activity record, bucketed by (Month, Year)
// for KPI aggregation.
type ActivityRevenue struct {
	ID        string    `json:"id"`
	Activity  string    `json:"activity"`
	Amount    float64   `json:"amount"`
	Kind      string    `json:"kind"`
	Month     int       `json:"month"`
	Year      int       `json:"year"`
	CreatedAt time.Time `json:"created_at"`
}
