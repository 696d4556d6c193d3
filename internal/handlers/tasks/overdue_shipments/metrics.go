package overdue_shipments

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ShipmentsOverdue = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "shipments_overdue",
		Help: "Shipments whose expected delivery date has passed and that are not delivered or returned",
	},
)
