package debug

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// Charts 曲线绘制
type Charts struct {
	Record
}

// Render 格式化
func (c *Charts) Render(w io.Writer) error {
	// 初始化界面
	lineD := charts.NewLine()
	lineD.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "维度曲线",
			Subtitle: "各子区间离散维度随细化轮次变化曲线",
		}),
		charts.WithLegendOpts(opts.Legend{
			Type:   "scroll",
			Orient: "vertical",
			Right:  "10",
			Top:    "20",
			Bottom: "20",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			SplitNumber: 20,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Scale: opts.Bool(true),
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
		charts.WithAnimation(true),
	)
	lineE := charts.NewLine()
	lineE.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "误差曲线",
			Subtitle: "尾部误差水平随细化轮次变化曲线",
		}),
		charts.WithLegendOpts(opts.Legend{
			Type:   "scroll",
			Orient: "vertical",
			Right:  "10",
			Top:    "20",
			Bottom: "20",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			SplitNumber: 20,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Scale: opts.Bool(true),
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
		charts.WithAnimation(true),
	)
	lineC := charts.NewLine()
	lineC.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "收敛曲线",
			Subtitle: "已完成子区间数量随细化轮次变化曲线",
		}),
		charts.WithLegendOpts(opts.Legend{
			Type:   "scroll",
			Orient: "vertical",
			Right:  "10",
			Top:    "20",
			Bottom: "20",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			SplitNumber: 20,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Scale: opts.Bool(true),
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
		charts.WithAnimation(true),
	)
	// 处理数据
	steps := make([]int, len(c.Time))
	for i := range steps {
		steps[i] = i
	}
	// 维度信息
	if len(c.Dims) > 0 {
		lineD.SetXAxis(steps)
		itemsD := make([][]opts.LineData, 0)
		seriesD := make([]charts.SingleSeries, 0)
		for i := range c.Dims[0] {
			itemsD = append(itemsD, make([]opts.LineData, len(steps)))
			seriesD = append(seriesD, charts.SingleSeries{
				Name: fmt.Sprintf("子区间(%d)", i),
				Data: itemsD[i],
				Type: types.ChartLine,
			})
			seriesD[i].InitSeriesDefaultOpts(lineD.BaseConfiguration)
		}
		for i, v := range c.Dims {
			for x, d := range v {
				itemsD[x][i].Value = d
			}
		}
		lineD.MultiSeries = seriesD
	}
	// 误差信息
	{
		lineE.SetXAxis(steps)
		itemsE := make([]opts.LineData, len(steps))
		for i, v := range c.EpsLevel {
			itemsE[i].Value = v
		}
		lineE.AddSeries("epslevel", itemsE)
	}
	// 收敛信息
	{
		lineC.SetXAxis(steps)
		itemsC := make([]opts.LineData, len(steps))
		for i, v := range c.DoneCount {
			itemsC[i].Value = v
		}
		lineC.AddSeries("已完成", itemsC)
	}
	// 构建界面
	page := components.NewPage()
	page.AddCharts(
		lineD,
		lineE,
		lineC,
	)
	return page.Render(w)
}

// Handler 发布到网页面
func (c *Charts) Handler(w http.ResponseWriter, _ *http.Request) {
	c.Render(w)
}
