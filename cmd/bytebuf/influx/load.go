package influx

import (
	"fmt"
	"path/filepath"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/openziti/bytebuf"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	influxCmd.AddCommand(influxLoadCmd)
}

var influxLoadCmd = &cobra.Command{
	Use:   "load <metricsRoot>",
	Short: "Load allocator metrics into the analyzer",
	Args:  cobra.ExactArgs(1),
	Run:   influxLoad,
}

func influxLoad(_ *cobra.Command, args []string) {
	metrics, err := bytebuf.DiscoverMetrics(args[0])
	if err != nil {
		logrus.Fatalf("error discovering metrics (%v)", err)
	}

	authToken := ""
	if influxDbUsername != "" || influxDbPassword != "" {
		authToken = fmt.Sprintf("%s:%s", influxDbUsername, influxDbPassword)
	}
	client := influxdb2.NewClient(influxDbUrl, authToken)
	writeApi := client.WriteAPI("", influxDbDatabase)

	for path, mid := range metrics {
		allocator := mid.Values["allocator"]
		for _, dataset := range bytebuf.MetricsDatasets {
			data, err := bytebuf.ReadSamples(filepath.Join(path, dataset+".csv"))
			if err != nil {
				logrus.Fatalf("error reading dataset [%s] (%v)", dataset, err)
			}
			for ts, v := range data {
				t := time.Unix(0, ts)
				p := influxdb2.NewPoint(dataset, nil, map[string]interface{}{"v": v}, t).AddTag("allocator", allocator)
				writeApi.WritePoint(p)
			}
			logrus.Infof("wrote [%d] points for allocator [%s] dataset [%s]", len(data), allocator, dataset)
		}
	}

	client.Close()
}
