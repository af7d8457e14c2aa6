package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var tableRows = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "checkbook",
	Name:      "table_rows",
	Help:      "Rows in the currently loaded base tables.",
}, []string{"table"})

func observeTables(vendors, companies int) {
	tableRows.WithLabelValues("vendor_records").Set(float64(vendors))
	tableRows.WithLabelValues("categorized_companies").Set(float64(companies))
}
