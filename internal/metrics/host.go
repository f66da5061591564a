package metrics

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// HostCollector samples memory and CPU usage of the machine at scrape time.
type HostCollector struct {
	memUsed    *prometheus.Desc
	memTotal   *prometheus.Desc
	cpuPercent *prometheus.Desc
}

func NewHostCollector() *HostCollector {
	return &HostCollector{
		memUsed: prometheus.NewDesc(
			"flaskr_host_memory_used_bytes",
			"Memory in use on the host.",
			nil, nil,
		),
		memTotal: prometheus.NewDesc(
			"flaskr_host_memory_total_bytes",
			"Total memory on the host.",
			nil, nil,
		),
		cpuPercent: prometheus.NewDesc(
			"flaskr_host_cpu_percent",
			"Host CPU utilisation since the previous scrape.",
			nil, nil,
		),
	}
}

func (c *HostCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.memUsed
	ch <- c.memTotal
	ch <- c.cpuPercent
}

func (c *HostCollector) Collect(ch chan<- prometheus.Metric) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		slog.Warn("Failed to read host memory", "error", err)
	} else {
		ch <- prometheus.MustNewConstMetric(c.memUsed, prometheus.GaugeValue, float64(vm.Used))
		ch <- prometheus.MustNewConstMetric(c.memTotal, prometheus.GaugeValue, float64(vm.Total))
	}

	// interval 0 compares against the previous call, so the first scrape reports since boot.
	percents, err := cpu.Percent(0, false)
	if err != nil || len(percents) == 0 {
		slog.Warn("Failed to read host cpu", "error", err)
		return
	}
	ch <- prometheus.MustNewConstMetric(c.cpuPercent, prometheus.GaugeValue, percents[0])
}
