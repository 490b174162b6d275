package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/voxelsplace/vxl/serve"
	"github.com/voxelsplace/vxl/utils"
	"github.com/voxelsplace/vxl/vxl"
)

func usage() {
	fmt.Println("Usage: vxltool <command> [args]")
	fmt.Println("Commands:")
	fmt.Println("  info input.vxl                           (print detected map dimensions)")
	fmt.Println("  vxl2glb input.vxl output.glb             (convert .vxl -> .glb using greedy mesh)")
	fmt.Println("  gen <seed> <size> <depth> output.vxl     (generate a terrain test map)")
	fmt.Println("  compress input.vxl output.vxlz [zlib|zstd|none]")
	fmt.Println("  decompress input.vxlz output.vxl")
	fmt.Println("  pack output.vxlpack input1.vxl [input2.vxl ...]")
	fmt.Println("  unpack input.vxlpack output_dir")
	fmt.Println("  serve [config.yaml]                      (stream a map to websocket clients)")
	fmt.Println("  archive-add archive.db name input.vxl")
	fmt.Println("  archive-list archive.db")
	fmt.Println("  archive-extract archive.db name output.vxl")
}

func parseCompression(s string) (vxl.Compression, error) {
	switch s {
	case "", "zstd":
		return vxl.CompZstd, nil
	case "zlib":
		return vxl.CompZlib, nil
	case "none":
		return vxl.CompNone, nil
	default:
		return 0, fmt.Errorf("unknown compression %q", s)
	}
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "info":
		if len(os.Args) != 3 {
			usage()
			os.Exit(1)
		}
		err = utils.RunInfo(os.Args[2])
	case "vxl2glb":
		if len(os.Args) != 4 {
			usage()
			os.Exit(1)
		}
		err = utils.RunVXL2GLB(os.Args[2], os.Args[3])
	case "gen":
		if len(os.Args) != 6 {
			usage()
			os.Exit(1)
		}
		var seed int64
		var size, depth int
		if seed, err = strconv.ParseInt(os.Args[2], 10, 64); err == nil {
			if size, err = strconv.Atoi(os.Args[3]); err == nil {
				depth, err = strconv.Atoi(os.Args[4])
			}
		}
		if err == nil {
			err = utils.RunGenerateTerrain(seed, size, depth, os.Args[5])
		}
	case "compress":
		if len(os.Args) != 4 && len(os.Args) != 5 {
			usage()
			os.Exit(1)
		}
		codec := ""
		if len(os.Args) == 5 {
			codec = os.Args[4]
		}
		var comp vxl.Compression
		if comp, err = parseCompression(codec); err == nil {
			err = utils.RunCompress(os.Args[2], os.Args[3], comp)
		}
	case "decompress":
		if len(os.Args) != 4 {
			usage()
			os.Exit(1)
		}
		err = utils.RunDecompress(os.Args[2], os.Args[3])
	case "pack":
		if len(os.Args) < 4 {
			usage()
			os.Exit(1)
		}
		err = utils.RunCreatePack(os.Args[3:], os.Args[2], vxl.CompZstd)
	case "unpack":
		if len(os.Args) != 4 {
			usage()
			os.Exit(1)
		}
		err = utils.RunUnpack(os.Args[2], os.Args[3])
	case "serve":
		cfgPath := ""
		if len(os.Args) == 3 {
			cfgPath = os.Args[2]
		}
		err = runServe(cfgPath)
	case "archive-add":
		if len(os.Args) != 5 {
			usage()
			os.Exit(1)
		}
		err = utils.RunArchiveAdd(os.Args[2], os.Args[3], os.Args[4])
	case "archive-list":
		if len(os.Args) != 3 {
			usage()
			os.Exit(1)
		}
		err = utils.RunArchiveList(os.Args[2])
	case "archive-extract":
		if len(os.Args) != 5 {
			usage()
			os.Exit(1)
		}
		err = utils.RunArchiveExtract(os.Args[2], os.Args[3], os.Args[4])
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

func runServe(cfgPath string) error {
	cfg, err := serve.LoadConfig(cfgPath)
	if err != nil {
		return err
	}
	if cfg.Map == "" {
		return fmt.Errorf("config has no map path")
	}
	m, err := utils.LoadMapFile(cfg.Map)
	if err != nil {
		return err
	}
	logger := log.New(os.Stderr, "serve ", log.LstdFlags)
	return serve.NewServer(m, cfg.ChunkSize, logger).ListenAndServe(cfg.Addr)
}
