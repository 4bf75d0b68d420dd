package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"net/http"

	"github.com/gokulhari/chebfun"
	"github.com/gokulhari/chebfun/fun"
	"github.com/gokulhari/chebfun/linop"
	"github.com/gokulhari/chebfun/semigroup"
	"github.com/gokulhari/chebfun/semigroup/debug"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

var serve = flag.String("serve", "", "调试图表服务地址，如 :8080")

func main() {
	flag.Parse()

	// 热传导方程 u_t = u_xx，区间[-1,1]，两端Dirichlet零边界
	dom := []float64{-1, 1}
	op, err := linop.Diff(dom, 2)
	if err != nil {
		log.Fatal(err)
	}
	op.AddBC(linop.Dirichlet(0, -1))
	op.AddBC(linop.Dirichlet(0, 1))

	// 初值：高斯脉冲
	u0, err := fun.NewFromFunc(func(x float64) float64 {
		return math.Exp(-20 * x * x)
	}, dom, 1e-12)
	if err != nil {
		log.Fatal(err)
	}

	rec := &debug.Charts{}
	prefs := semigroup.DefaultPrefs()
	prefs.Observer = rec

	times := []float64{0, 0.01, 0.1, 1}
	out, err := chebfun.ExpmBlock(op, times, u0, &prefs)
	if err != nil {
		log.Fatal(err)
	}

	p := plot.New()
	p.Title.Text = "热传导方程半群传播"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "u(x,t)"
	for i, t := range times {
		f, ok := out.Fun(i)
		if !ok {
			log.Fatalf("时间 t=%v 处结果不是函数块", t)
		}
		fmt.Printf("t=%-5v 长度=%d 幅值=%.6f\n", t, f.Length(), f.VScale())
		pts := make(plotter.XYs, 400)
		for j := range pts {
			x := -1 + 2*float64(j)/float64(len(pts)-1)
			pts[j].X = x
			pts[j].Y = f.Eval(x)
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			log.Fatal(err)
		}
		line.Dashes = plotutil.DefaultDashes[i%len(plotutil.DefaultDashes)]
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("t=%v", t), line)
	}
	if err := p.Save(6*vg.Inch, 4*vg.Inch, "heat.png"); err != nil {
		log.Fatal(err)
	}
	fmt.Println("已保存 heat.png")

	if *serve != "" {
		fmt.Println("调试图表:", *serve)
		http.HandleFunc("/", rec.Handler)
		log.Fatal(http.ListenAndServe(*serve, nil))
	}
}
