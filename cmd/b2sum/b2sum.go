// Command b2sum prints BLAKE2b digests of files, hashing all of them in lockstep batches.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/codahale/blake2many"
	"github.com/codahale/blake2many/blake2bp"
)

func main() {
	var (
		alg   = flag.String("a", "blake2b", "algorithm (blake2b or blake2bp)")
		bits  = flag.Int("l", 8*blake2many.Size, "digest length in bits, a multiple of 8 up to 512")
		lanes = flag.Int("lanes", 0, "batch width (1, 2, 4, or 8; 0 picks one for this CPU)")
	)
	flag.Parse()

	log := slog.New(slog.Default().Handler())

	if *bits <= 0 || *bits%8 != 0 || *bits > 8*blake2many.Size {
		log.Error("invalid digest length", "bits", *bits)
		os.Exit(2)
	}
	switch *lanes {
	case 0, 1, 2, 4, 8:
	default:
		log.Error("invalid batch width", "lanes", *lanes)
		os.Exit(2)
	}
	switch *alg {
	case "blake2b":
	case "blake2bp":
		if *bits != 8*blake2bp.Size {
			log.Error("blake2bp digests are 512 bits", "bits", *bits)
			os.Exit(2)
		}
	default:
		log.Error("unknown algorithm", "alg", *alg)
		os.Exit(2)
	}

	names := flag.Args()
	if len(names) == 0 {
		names = []string{"-"}
	}

	params := &blake2many.Params{Size: *bits / 8}
	jobs := make([]*blake2many.HashJob, 0, len(names))
	read := make([]string, 0, len(names))
	status := 0
	for _, name := range names {
		data, err := readInput(name)
		if err != nil {
			log.Error("failed to read input", "name", name, "err", err)
			status = 1
			continue
		}
		jobs = append(jobs, &blake2many.HashJob{Params: params, Input: data})
		read = append(read, name)
	}

	if *alg == "blake2bp" {
		for _, job := range jobs {
			sum := blake2bp.Sum(job.Input)
			job.Sum = sum[:]
		}
	} else if err := blake2many.HashMany(jobs, *lanes); err != nil {
		log.Error("failed to hash inputs", "err", err)
		os.Exit(1)
	}

	for i, job := range jobs {
		fmt.Printf("%s  %s\n", hex.EncodeToString(job.Sum), read[i])
	}
	os.Exit(status)
}

func readInput(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(name)
}
