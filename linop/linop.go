package linop

import (
	"errors"
	"fmt"
	"math"
)

// Term 算子块中的单项：Coeff(x)·d^Order/dx^Order
type Term struct {
	Order int                  // 导数阶数（>=0）
	Coeff func(x float64) float64 // 变系数（nil视为常数1）
}

// CondTerm 线性泛函中的单项：Coeff·(第Var个分量在Point处的Order阶导数值)
// Side指明断点处取极限的方向：-1左极限，+1右极限，0自动（内点或外端点）
type CondTerm struct {
	Var   int
	Point float64
	Order int
	Coeff float64
	Side  int
}

// Condition 线性约束：Σ terms = Value（边界条件与连续性条件的统一表示）
type Condition struct {
	Terms []CondTerm
	Value float64
}

// Operator 线性微分算子 L：m分量系统，定义在有序断点序列上
// 构造完成后只读；连续性条件缺省时在首次离散化前派生并缓存（一次性变更）
type Operator struct {
	dom    []float64   // 断点序列（严格递增，有限）
	m      int         // 分量数
	blocks [][][]Term  // blocks[eq][var]：方程eq中作用于第var分量的项
	bcs    []Condition // 边界条件泛函（目标值恒为0）
	cont   []Condition // 连续性条件（缺省时自动派生）
	isFun  []bool      // 分量是否为函数型（参与收敛判定）
}

// New 构造m分量线性算子
func New(dom []float64, m int) (*Operator, error) {
	if len(dom) < 2 {
		return nil, fmt.Errorf("linop: need at least 2 breakpoints, got %d", len(dom))
	}
	for i, d := range dom {
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return nil, errors.New("linop: unbounded domain is not discretizable")
		}
		if i > 0 && !(dom[i-1] < d) {
			return nil, fmt.Errorf("linop: breakpoints must be strictly increasing at index %d", i)
		}
	}
	if m < 1 {
		return nil, fmt.Errorf("linop: invalid component count %d", m)
	}
	blocks := make([][][]Term, m)
	isFun := make([]bool, m)
	for i := range blocks {
		blocks[i] = make([][]Term, m)
		isFun[i] = true
	}
	return &Operator{
		dom:    append([]float64(nil), dom...),
		m:      m,
		blocks: blocks,
		isFun:  isFun,
	}, nil
}

// AddTerm 向方程eq中追加作用于第v分量的项
func (op *Operator) AddTerm(eq, v int, t Term) error {
	if eq < 0 || eq >= op.m || v < 0 || v >= op.m {
		return fmt.Errorf("linop: block index (%d,%d) out of range for %d components", eq, v, op.m)
	}
	if t.Order < 0 {
		return fmt.Errorf("linop: invalid derivative order %d", t.Order)
	}
	op.blocks[eq][v] = append(op.blocks[eq][v], t)
	return nil
}

// AddBC 追加边界条件泛函
func (op *Operator) AddBC(c Condition) error {
	for _, t := range c.Terms {
		if t.Var < 0 || t.Var >= op.m {
			return fmt.Errorf("linop: condition references component %d of %d", t.Var, op.m)
		}
		if t.Point < op.dom[0] || t.Point > op.dom[len(op.dom)-1] {
			return fmt.Errorf("linop: condition point %v outside domain", t.Point)
		}
	}
	op.bcs = append(op.bcs, c)
	return nil
}

// SetIsFun 标记第v分量是否为函数型分量
// 非函数型（辅助/代数）分量不参与收敛判定
func (op *Operator) SetIsFun(v int, fn bool) error {
	if v < 0 || v >= op.m {
		return fmt.Errorf("linop: component index %d out of range", v)
	}
	op.isFun[v] = fn
	return nil
}

// Domain 返回断点序列副本
func (op *Operator) Domain() []float64 { return append([]float64(nil), op.dom...) }

// NumVars 返回分量数
func (op *Operator) NumVars() int { return op.m }

// IsFun 返回第v分量的函数型标记
func (op *Operator) IsFun(v int) bool { return op.isFun[v] }

// Block 返回方程eq中作用于第v分量的项列表
func (op *Operator) Block(eq, v int) []Term { return op.blocks[eq][v] }

// BoundaryConditions 返回边界条件列表
func (op *Operator) BoundaryConditions() []Condition { return op.bcs }

// MaxOrder 返回方程eq各项的最高导数阶（决定该方程的降采样行数）
func (op *Operator) MaxOrder(eq int) int {
	order := 0
	for v := 0; v < op.m; v++ {
		for _, t := range op.blocks[eq][v] {
			if t.Order > order {
				order = t.Order
			}
		}
	}
	return order
}

// VarMaxOrder 返回第v分量在所有方程中出现的最高导数阶（决定连续性阶数）
func (op *Operator) VarMaxOrder(v int) int {
	order := 0
	for eq := 0; eq < op.m; eq++ {
		for _, t := range op.blocks[eq][v] {
			if t.Order > order {
				order = t.Order
			}
		}
	}
	return order
}

// ContinuityConditions 返回连续性条件，缺省时从断点序列派生（结果缓存）
// 每个内部断点处，对每个函数型分量施加C^{k-1}匹配（k为该分量的最高导数阶）
func (op *Operator) ContinuityConditions() []Condition {
	if op.cont != nil || len(op.dom) == 2 {
		return op.cont
	}
	var conds []Condition
	for b := 1; b < len(op.dom)-1; b++ {
		pt := op.dom[b]
		for v := 0; v < op.m; v++ {
			k := op.VarMaxOrder(v)
			for d := 0; d < k; d++ {
				conds = append(conds, Condition{
					Terms: []CondTerm{
						{Var: v, Point: pt, Order: d, Coeff: 1, Side: -1},
						{Var: v, Point: pt, Order: d, Coeff: -1, Side: +1},
					},
				})
			}
		}
	}
	op.cont = conds
	return op.cont
}

// ------------------------------ 常用构造器 ------------------------------

// Diff 构造dom上的单分量order阶导数算子 d^order/dx^order
func Diff(dom []float64, order int) (*Operator, error) {
	op, err := New(dom, 1)
	if err != nil {
		return nil, err
	}
	if err := op.AddTerm(0, 0, Term{Order: order}); err != nil {
		return nil, err
	}
	return op, nil
}

// Dirichlet 生成第v分量在点pt处取值为零的边界条件
func Dirichlet(v int, pt float64) Condition {
	return Condition{Terms: []CondTerm{{Var: v, Point: pt, Order: 0, Coeff: 1}}}
}

// Neumann 生成第v分量在点pt处一阶导数为零的边界条件
func Neumann(v int, pt float64) Condition {
	return Condition{Terms: []CondTerm{{Var: v, Point: pt, Order: 1, Coeff: 1}}}
}
