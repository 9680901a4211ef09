package mmd

import (
	"errors"
	"testing"
)

func TestAssemblePartition(t *testing.T) {
	indices := []uint16{0, 1, 2, 2, 1, 0, 0, 2, 1}
	doc := newTestDocument(triangleVertices(), indices, 3, 6)

	asm, err := Assemble(len(doc.Vertices), doc.Indices, doc.Materials, &Options{Strict: true})
	if err != nil {
		t.Fatal("Assemble failed.", err)
	}
	if len(asm.Submeshes) != 2 || len(asm.Issues) != 0 {
		t.Fatal("unexpected result", asm.Submeshes, asm.Issues)
	}
	s0, s1 := asm.Submeshes[0], asm.Submeshes[1]
	if s0.Material != 0 || s0.Offset != 0 || len(s0.Indices) != 3 {
		t.Error("submesh 0", s0)
	}
	if s1.Material != 1 || s1.Offset != 3 || len(s1.Indices) != 6 || s1.Triangle(1) != [3]uint16{0, 2, 1} {
		t.Error("submesh 1", s1)
	}
	if cap(s0.Indices) != len(s0.Indices) {
		t.Error("submesh slice can grow into its neighbour")
	}
}

func TestAssembleMalformedTriangleList(t *testing.T) {
	indices := []uint16{0, 1, 2, 0}

	if _, err := Assemble(3, indices, newTestDocument(nil, nil, 3).Materials, &Options{Strict: true}); !errors.Is(err, ErrMalformedTriangleList) {
		t.Error("expected ErrMalformedTriangleList", err)
	}

	for _, count := range []uint32{3, 4} {
		asm, err := Assemble(3, indices, newTestDocument(nil, nil, count).Materials, nil)
		if err != nil {
			t.Fatal("lenient Assemble failed.", count, err)
		}
		if len(asm.Indices) != 3 || len(asm.Submeshes[0].Indices) != 3 {
			t.Error("partial triangle not dropped", count, asm.Indices, asm.Submeshes[0])
		}
		if len(asm.Issues) != 1 || asm.Issues[0].Count != 1 || !errors.Is(asm.Issues[0], ErrMalformedTriangleList) {
			t.Error("issues", count, asm.Issues)
		}
	}
}

func TestAssembleMisalignedMaterial(t *testing.T) {
	indices := []uint16{0, 1, 2, 0, 1, 2}
	materials := newTestDocument(nil, nil, 4, 2).Materials

	if _, err := Assemble(3, indices, materials, &Options{Strict: true}); !errors.Is(err, ErrMalformedTriangleList) {
		t.Error("expected ErrMalformedTriangleList", err)
	}

	asm, err := Assemble(3, indices, materials, nil)
	if err != nil {
		t.Fatal("lenient Assemble failed.", err)
	}
	if len(asm.Submeshes[0].Indices) != 3 || len(asm.Submeshes[1].Indices) != 0 || asm.Submeshes[1].Offset != 4 {
		t.Error("submeshes", asm.Submeshes[0], asm.Submeshes[1])
	}
	if asm.Issues.Count(ErrMalformedTriangleList) != 2 {
		t.Error("issues", asm.Issues)
	}
}

func TestAssembleIndexOutOfRange(t *testing.T) {
	indices := []uint16{0, 1, 2, 0, 1, 5}
	materials := newTestDocument(nil, nil, 6).Materials

	_, err := Assemble(3, indices, materials, &Options{Strict: true})
	var issue *Issue
	if !errors.As(err, &issue) || issue.Err != ErrIndexOutOfRange || issue.Offset != 5 || issue.Material != 0 {
		t.Error("expected ErrIndexOutOfRange", err)
	}

	asm, err := Assemble(3, indices, materials, nil)
	if err != nil {
		t.Fatal("lenient Assemble failed.", err)
	}
	if len(asm.Submeshes[0].Indices) != 3 || asm.Submeshes[0].Triangle(0) != [3]uint16{0, 1, 2} {
		t.Error("bad triangle not dropped", asm.Submeshes[0])
	}
	if len(asm.Issues) != 1 || asm.Issues[0].Count != 1 || asm.Issues[0].Err != ErrIndexOutOfRange {
		t.Error("issues", asm.Issues)
	}
	if len(asm.Indices) != 6 {
		t.Error("index table should be kept as read", asm.Indices)
	}
}

func TestAssemblePartitionOverrun(t *testing.T) {
	indices := []uint16{0, 1, 2, 2, 1, 0}
	materials := newTestDocument(nil, nil, 3, 6).Materials

	for _, opts := range []*Options{nil, {Strict: true}} {
		_, err := Assemble(3, indices, materials, opts)
		var issue *Issue
		if !errors.As(err, &issue) || issue.Err != ErrPartitionOverrun || issue.Material != 1 || issue.Count != 3 {
			t.Error("expected ErrPartitionOverrun", opts, err)
		}
	}
}

func TestAssemblePartitionUnderrun(t *testing.T) {
	indices := []uint16{0, 1, 2, 2, 1, 0}
	materials := newTestDocument(nil, nil, 3).Materials

	asm, err := Assemble(3, indices, materials, nil)
	if err != nil {
		t.Fatal("lenient Assemble failed.", err)
	}
	if len(asm.Issues) != 1 || asm.Issues[0].Err != ErrPartitionUnderrun || asm.Issues[0].Count != 3 || asm.Issues[0].Offset != 3 {
		t.Error("issues", asm.Issues)
	}

	for _, opts := range []*Options{{Strict: true}, {FailOnUnderrun: true}} {
		if _, err := Assemble(3, indices, materials, opts); !errors.Is(err, ErrPartitionUnderrun) {
			t.Error("expected ErrPartitionUnderrun", opts, err)
		}
	}
}

func TestParseLenientDocument(t *testing.T) {
	data := encode(t, newTestDocument(triangleVertices(), []uint16{0, 1, 2, 0}, 3))

	if _, err := Parse(data, &Options{Strict: true}); !errors.Is(err, ErrMalformedTriangleList) {
		t.Error("expected ErrMalformedTriangleList", err)
	}

	doc, err := Parse(data, nil)
	if err != nil {
		t.Fatal("Parse failed.", err)
	}
	if len(doc.Indices) != 3 || len(doc.Issues) != 1 || doc.Issues[0].Count != 1 {
		t.Error("lenient document", doc.Indices, doc.Issues)
	}
	if !errors.Is(doc.Err(), ErrMalformedTriangleList) {
		t.Error("Err()", doc.Err())
	}
	t.Log(doc.Err())
}
