package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vicanso/go-charts/v2"

	"frontiergen/internal/engine"
)

// RenderFrontierChart renders the efficient frontier as a PNG line chart:
// risk on the x axis, expected return on the y axis.
func RenderFrontierChart(ds *engine.Dataset) ([]byte, error) {
	frontier := ds.EfficientFrontier
	if len(frontier) == 0 {
		return nil, fmt.Errorf("no frontier points to chart")
	}

	xLabels := make([]string, len(frontier))
	values := make([]float64, len(frontier))
	for i, p := range frontier {
		xLabels[i] = fmt.Sprintf("%.4f", p.Risk)
		values[i] = p.ExpectedReturn
	}

	// Y-axis range with padding so the frontier doesn't hug the borders.
	minVal, maxVal := values[0], values[0]
	for _, v := range values {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	padding := (maxVal - minVal) * 0.05
	if padding == 0 {
		padding = 0.001
	}
	yMin := minVal - padding
	yMax := maxVal + padding

	splitNum := 6
	if len(xLabels) <= 30 {
		splitNum = len(xLabels) / 3
		if splitNum < 3 {
			splitNum = 3
		}
	}

	title := fmt.Sprintf("Efficient Frontier (%s)", strings.Join(ds.Metadata.Tickers, ", "))
	subtitle := fmt.Sprintf("%d frontier points | %d portfolios | %d observations",
		len(frontier), len(ds.Portfolios), ds.Metadata.Observations)

	p, err := charts.LineRender(
		[][]float64{values},
		charts.TitleTextOptionFunc(title+"\n"+subtitle),
		charts.XAxisOptionFunc(charts.XAxisOption{
			Data:        xLabels,
			SplitNumber: splitNum,
			BoundaryGap: charts.FalseFlag(),
		}),
		charts.YAxisOptionFunc(charts.YAxisOption{
			Min:         &yMin,
			Max:         &yMax,
			DivideCount: 5,
		}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("encode chart: %w", err)
	}
	return buf, nil
}

// WriteChart renders the frontier chart to a PNG file.
func WriteChart(path string, ds *engine.Dataset) error {
	buf, err := RenderFrontierChart(ds)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create chart dir: %w", err)
		}
	}
	if err := os.WriteFile(path, buf, 0644); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	return nil
}
