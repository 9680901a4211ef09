package mmd

// Assembly is the result of partitioning the index table by material.
type Assembly struct {
	Indices   []uint16 // index table without a trailing partial triangle
	Submeshes []*Submesh
	Issues    IssueList
}

type assembler struct {
	opts        *Options
	vertexCount int
	issues      IssueList
}

// report records issue, or returns it when running strict.
func (a *assembler) report(issue *Issue) error {
	if a.opts.Strict {
		return issue
	}
	a.issues = append(a.issues, issue)
	return nil
}

// Assemble assigns consecutive runs of the index table to materials in
// declaration order, Count entries each, and checks the triangles.
//
// A material running past the end of the table is always an error. The
// other problems are collected unless opts.Strict is set:
// a trailing partial triangle is dropped, triangles referring to missing
// vertices are dropped from their submesh, and entries not claimed by any
// material are reported.
func Assemble(vertexCount int, indices []uint16, materials []*Material, opts *Options) (*Assembly, error) {
	if opts == nil {
		opts = &Options{}
	}
	a := &assembler{opts: opts, vertexCount: vertexCount}

	valid := len(indices) - len(indices)%3
	if valid != len(indices) {
		err := a.report(&Issue{Err: ErrMalformedTriangleList, Material: -1, Offset: valid, Count: len(indices) - valid})
		if err != nil {
			return nil, err
		}
	}
	table := make([]uint16, valid)
	copy(table, indices)

	submeshes := make([]*Submesh, len(materials))
	offset := 0
	for i, m := range materials {
		count := int(m.Count)
		if count < 0 || count > len(indices)-offset {
			return nil, &Issue{Err: ErrPartitionOverrun, Material: i, Offset: offset, Count: count - (len(indices) - offset)}
		}
		s, err := a.submesh(i, table, offset, offset+count)
		if err != nil {
			return nil, err
		}
		submeshes[i] = s
		offset += count
	}

	if offset < valid {
		issue := &Issue{Err: ErrPartitionUnderrun, Material: -1, Offset: offset, Count: valid - offset}
		if opts.Strict || opts.FailOnUnderrun {
			return nil, issue
		}
		a.issues = append(a.issues, issue)
	}

	return &Assembly{Indices: table, Submeshes: submeshes, Issues: a.issues}, nil
}

func (a *assembler) submesh(mat int, table []uint16, start, end int) (*Submesh, error) {
	// entries past the trimmed table were already reported
	if end > len(table) {
		end = len(table)
	}
	if start > end {
		start = end
	}
	s := &Submesh{Material: mat, Offset: start, Indices: table[start:end:end]}

	if rest := len(s.Indices) % 3; rest != 0 {
		err := a.report(&Issue{Err: ErrMalformedTriangleList, Material: mat, Offset: end - rest, Count: rest})
		if err != nil {
			return nil, err
		}
		s.Indices = s.Indices[:len(s.Indices)-rest]
	}

	if err := a.checkRange(s); err != nil {
		return nil, err
	}
	return s, nil
}

func (a *assembler) checkRange(s *Submesh) error {
	first := -1
	for i, vi := range s.Indices {
		if int(vi) >= a.vertexCount {
			first = i
			break
		}
	}
	if first < 0 {
		return nil
	}
	if a.opts.Strict {
		return &Issue{Err: ErrIndexOutOfRange, Material: s.Material, Offset: s.Offset + first, Count: 1}
	}

	kept := make([]uint16, 0, len(s.Indices))
	dropped := 0
	for t := 0; t < len(s.Indices); t += 3 {
		tri := s.Indices[t : t+3]
		if int(tri[0]) < a.vertexCount && int(tri[1]) < a.vertexCount && int(tri[2]) < a.vertexCount {
			kept = append(kept, tri...)
		} else {
			dropped++
		}
	}
	s.Indices = kept
	a.issues = append(a.issues, &Issue{Err: ErrIndexOutOfRange, Material: s.Material, Offset: s.Offset + first, Count: dropped})
	return nil
}
