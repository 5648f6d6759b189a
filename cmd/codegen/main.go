package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/delaneyj/cellgraph/cmd/codegen/templates"
	"github.com/urfave/cli/v3"
)

const genericParamCountKey = "count"

func main() {
	cmd := &cli.Command{
		Name:  "generate",
		Usage: "Generate arity-specific derivation constructors",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  genericParamCountKey,
				Usage: "Number of generic parameters to generate",
				Value: 8,
			},
		},
		Action: generate,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func generate(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	log.Printf("Codegen for loom started!")
	defer func() {
		log.Printf("Codegen for loom finished in %v", time.Since(start))
	}()

	genericParamCount := cmd.Uint(genericParamCountKey)
	log.Printf("Generic params: %d", genericParamCount)

	contents := templates.DerivedNGen(int(genericParamCount))
	if err := os.WriteFile("loom/derivedn.go", []byte(contents), 0644); err != nil {
		return err
	}

	return nil
}
