package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/binzume/pmdmesh/converter"
	"github.com/binzume/pmdmesh/mmd"
	"github.com/qmuntal/gltf"
)

func defaultOutputFile(input string) string {
	ext := filepath.Ext(input)
	return input[0:len(input)-len(ext)] + ".glb"
}

func saveDocument(doc *mmd.Document, output string, conf *Config) error {
	ext := strings.ToLower(filepath.Ext(output))
	switch ext {
	case ".glb", ".gltf":
		gltfdoc, err := converter.NewPMDToGLTFConverter(&conf.GLTF).Convert(doc, conf.TextureDir)
		if err != nil {
			return err
		}
		if ext == ".gltf" {
			return gltf.Save(gltfdoc, output)
		}
		return gltf.SaveBinary(gltfdoc, output)
	case ".pmd":
		w, err := os.Create(output)
		if err != nil {
			return err
		}
		defer w.Close()
		return mmd.Write(w, doc)
	case ".yaml", ".yml":
		w, err := os.Create(output)
		if err != nil {
			return err
		}
		defer w.Close()
		return dumpSummary(w, doc, "yaml")
	}
	return fmt.Errorf("unsupported output type: %v", ext)
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s input.pmd [output.glb]\n", os.Args[0])
		flag.PrintDefaults()
	}
	confFile := flag.String("config", "", "config file (default: input.pmdconv.yaml)")
	strict := flag.Bool("strict", false, "abort on the first issue")
	checkMagic := flag.Bool("checkmagic", false, "reject files without Pmd tag")
	forceUnlit := flag.Bool("gltfunlit", false, "unlit all materials")
	scale := flag.Float64("scale", 0, "0:default(0.08)")
	ground := flag.Bool("ground", false, "move the model onto the origin")
	texDir := flag.String("texdir", "", "texture directory (default: input dir)")
	dump := flag.String("dump", "", "print summary: text or yaml")
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		return
	}
	input := flag.Arg(0)
	output := flag.Arg(1)
	if output == "" && *dump == "" {
		output = defaultOutputFile(input)
	}

	if *confFile == "" {
		*confFile = defaultConfigFile(input)
	}
	conf, err := loadConfig(*confFile)
	if err != nil {
		log.Fatal(err)
	}
	conf.Parse.Strict = conf.Parse.Strict || *strict
	conf.Parse.CheckMagic = conf.Parse.CheckMagic || *checkMagic
	conf.GLTF.ForceUnlit = conf.GLTF.ForceUnlit || *forceUnlit
	conf.GLTF.Grounding = conf.GLTF.Grounding || *ground
	if *scale != 0 {
		conf.GLTF.Scale = float32(*scale)
	}
	if *texDir != "" {
		conf.TextureDir = *texDir
	}
	if conf.TextureDir == "" {
		conf.TextureDir = filepath.Dir(input)
	}

	doc, err := mmd.Open(input, &conf.Parse)
	if err != nil {
		log.Fatal(err)
	}
	log.Println("Name: ", doc.Name())
	log.Println("Comment: ", doc.Comment())
	for _, issue := range doc.Issues {
		log.Println("Warning: ", issue)
	}

	if *dump != "" {
		if err := dumpSummary(os.Stdout, doc, *dump); err != nil {
			log.Fatal(err)
		}
	}
	if output == "" {
		return
	}

	log.Print("out: ", output)
	if err = saveDocument(doc, output, conf); err != nil {
		log.Fatal(err)
	}
}
