package semigroup

import (
	"fmt"
	"strings"

	"github.com/gokulhari/chebfun/fun"
)

// Block 块向量中的异构块：函数、标量或嵌套块向量
type Block interface {
	isBlock()
}

// FunBlock 函数块
type FunBlock struct {
	F *fun.Fun
}

// ScalarBlock 标量块
type ScalarBlock struct {
	V float64
}

func (FunBlock) isBlock() {}

func (ScalarBlock) isBlock() {}

func (*BlockVector) isBlock() {}

// BlockVector 有序异构块序列（向量值状态或逐时间点结果列）
type BlockVector struct {
	blocks []Block
}

// NewBlockVector 创建预分配容量的空块向量
func NewBlockVector(capacity int) *BlockVector {
	return &BlockVector{blocks: make([]Block, 0, capacity)}
}

// Append 追加一个块
func (bv *BlockVector) Append(b Block) {
	bv.blocks = append(bv.blocks, b)
}

// Len 返回块数量
func (bv *BlockVector) Len() int { return len(bv.blocks) }

// At 返回第i个块
func (bv *BlockVector) At(i int) Block { return bv.blocks[i] }

// Fun 返回第i个块的函数表示（块非函数型时ok为false）
func (bv *BlockVector) Fun(i int) (*fun.Fun, bool) {
	fb, ok := bv.blocks[i].(FunBlock)
	if !ok {
		return nil, false
	}
	return fb.F, true
}

// String 格式化输出
func (bv *BlockVector) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "BlockVector(%d):", len(bv.blocks))
	for i, b := range bv.blocks {
		switch v := b.(type) {
		case FunBlock:
			fmt.Fprintf(&sb, "\n  [%d] %s", i, v.F)
		case ScalarBlock:
			fmt.Fprintf(&sb, "\n  [%d] scalar %v", i, v.V)
		case *BlockVector:
			fmt.Fprintf(&sb, "\n  [%d] nested(%d)", i, v.Len())
		}
	}
	return sb.String()
}
