package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"adminforms/internal/config"
	"adminforms/internal/openfga"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	command := os.Args[1]

	cfg := config.NewConfig()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	fgaClient, err := openfga.NewClient(logger, cfg.OpenFGA)
	if err != nil {
		panic(err)
	}

	switch command {
	case "write-model":
		handleWriteModel(ctx, fgaClient)
	case "assign":
		handleAssign(ctx, logger, fgaClient, os.Args[2:])
	case "check":
		handleCheck(ctx, fgaClient, os.Args[2:])
	default:
		printUsage()
	}
}

func handleWriteModel(ctx context.Context, fgaClient *openfga.Client) {
	modelID, err := fgaClient.WriteModel(ctx)
	if err != nil {
		panic(err)
	}

	fmt.Printf("Authorization model written with ID: %s\n", modelID)
	fmt.Println("Set OPENFGA_AUTHORIZATION_MODEL_ID to use it")
}

func handleAssign(ctx context.Context, logger *slog.Logger, fgaClient *openfga.Client, args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: openfga assign <module_id,...> <user_id,...>")
		return
	}

	moduleIDs := strings.Split(args[0], ",")
	userIDs := strings.Split(args[1], ",")
	if err := openfga.NewAssigner(logger, fgaClient).Assign(ctx, moduleIDs, userIDs); err != nil {
		panic(err)
	}

	fmt.Printf("Assigned %d module(s) to %d user(s)\n", len(moduleIDs), len(userIDs))
}

func handleCheck(ctx context.Context, fgaClient *openfga.Client, args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: openfga check <user_id> <module_id>")
		return
	}

	allowed, err := fgaClient.Check(ctx, openfga.Tuple{
		User:     "user:" + args[0],
		Relation: openfga.RelationAssignee,
		Object:   "module:" + args[1],
	})
	if err != nil {
		panic(err)
	}

	fmt.Printf("user:%s %s module:%s: %t\n", args[0], openfga.RelationAssignee, args[1], allowed)
}

func printUsage() {
	fmt.Println("Usage: openfga <command>")
	fmt.Println("Commands:")
	fmt.Println("  write-model            Write the module assignment model to OpenFGA")
	fmt.Println("  assign                 Assign modules to users")
	fmt.Println("  check                  Check whether a user is assigned a module")
}
