package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/born-ml/einsum/internal/serialization"
	"github.com/born-ml/einsum/internal/tensor"
)

func demoCmd(args []string) {
	fs := newFlagSet("demo")
	dir := fs.String("dir", "out", "Directory for the generated files")
	_ = fs.Parse(args)

	tensors, err := demoTensors()
	if err != nil {
		log.Fatalf("demo: %v", err)
	}

	path := filepath.Join(*dir, "relations.safetensors")
	meta := map[string]string{"source": "einsum demo"}
	if err := serialization.WriteSafeTensors(path, tensors, meta); err != nil {
		log.Fatalf("demo: %v", err)
	}

	fmt.Printf("Wrote %d relation tensors to %s\n\n", len(tensors), path)
	fmt.Println("Try:")
	fmt.Printf("  einsum run -formula ij,jk->ik %[1]s:parent %[1]s:parent\n", path)
	fmt.Printf("  einsum run -formula sc,cq->sq %[1]s:facts %[1]s:rules\n", path)
	fmt.Printf("  einsum run -formula xyc,yzc->xzc -slices %[1]s:trust %[1]s:trust\n", path)
}

// demoTensors builds small relations over three entities:
// parent (a chain 0 -> 1 -> 2), facts and rules for a two step
// syllogism, and trust split into two contexts.
func demoTensors() (map[string]*tensor.Tensor, error) {
	parent, err := tensor.FromRows([][]float64{
		{0, 1, 0},
		{0, 0, 1},
		{0, 0, 0},
	})
	if err != nil {
		return nil, err
	}

	facts, err := tensor.FromRows([][]float64{
		{1, 0},
		{0, 1},
	})
	if err != nil {
		return nil, err
	}

	rules, err := tensor.FromRows([][]float64{
		{1, 0},
		{0, 1},
	})
	if err != nil {
		return nil, err
	}

	trust := tensor.Zeros(tensor.Shape{3, 3, 2})
	for _, c := range [][]int{{0, 1, 0}, {1, 2, 0}, {0, 2, 1}, {2, 0, 1}} {
		if err := trust.Set(1, c...); err != nil {
			return nil, err
		}
	}

	return map[string]*tensor.Tensor{
		"parent": parent,
		"facts":  facts,
		"rules":  rules,
		"trust":  trust,
	}, nil
}
