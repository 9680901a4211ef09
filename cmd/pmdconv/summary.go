package main

import (
	"fmt"
	"io"

	"github.com/binzume/pmdmesh/mmd"
	"gopkg.in/yaml.v2"
)

type Summary struct {
	Name      string             `yaml:"name"`
	Comment   string             `yaml:"comment"`
	Version   float32            `yaml:"version"`
	Vertices  int                `yaml:"vertices"`
	Indices   int                `yaml:"indices"`
	Bounds    [2][3]float32      `yaml:"bounds,flow"`
	Materials []*MaterialSummary `yaml:"materials"`
	Issues    []string           `yaml:"issues,omitempty"`
}

type MaterialSummary struct {
	Texture   string `yaml:"texture,omitempty"`
	Sphere    string `yaml:"sphere,omitempty"`
	Toon      string `yaml:"toon,omitempty"`
	Blend     string `yaml:"blend"`
	Triangles int    `yaml:"triangles"`
}

func newSummary(doc *mmd.Document) *Summary {
	s := &Summary{
		Name:     doc.Name(),
		Comment:  doc.Comment(),
		Version:  doc.Header.Version,
		Vertices: len(doc.Vertices),
		Indices:  len(doc.Indices),
	}
	if box := doc.Bounds(); !box.IsEmpty() {
		box.Min.ToArray(s.Bounds[0][:])
		box.Max.ToArray(s.Bounds[1][:])
	}
	for i, m := range doc.Materials {
		names := m.TextureNames()
		sphere, _ := names.SphereMap()
		ms := &MaterialSummary{
			Texture: names.Texture(),
			Sphere:  sphere,
			Toon:    m.ToonTexture(),
			Blend:   m.Blend().String(),
		}
		if i < len(doc.Submeshes) {
			ms.Triangles = doc.Submeshes[i].TriangleCount()
		}
		s.Materials = append(s.Materials, ms)
	}
	for _, issue := range doc.Issues {
		s.Issues = append(s.Issues, issue.Error())
	}
	return s
}

func dumpSummary(w io.Writer, doc *mmd.Document, format string) error {
	s := newSummary(doc)
	if format == "yaml" {
		return yaml.NewEncoder(w).Encode(s)
	}

	fmt.Fprintf(w, "Name: %s\nComment: %s\n", s.Name, s.Comment)
	fmt.Fprintf(w, "Vertices: %d Indices: %d Materials: %d\n", s.Vertices, s.Indices, len(s.Materials))
	for i, m := range s.Materials {
		fmt.Fprintf(w, "  %d: %s tex=%q sphere=%q toon=%q triangles=%d\n", i, m.Blend, m.Texture, m.Sphere, m.Toon, m.Triangles)
	}
	for _, issue := range s.Issues {
		fmt.Fprintln(w, "Issue:", issue)
	}
	return nil
}
