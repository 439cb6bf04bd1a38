// cmd/tools/registry-updater/main.go
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"skill-match-workers/pkg/registry"
)

const defaultRegistryPath = "pkg/registry/activities.json"

func main() {
	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "validate":
		cmd := flag.NewFlagSet("validate", flag.ExitOnError)
		path := cmd.String("path", defaultRegistryPath, "Path to registry file")
		_ = cmd.Parse(os.Args[2:])

		reg, err := registry.LoadRegistry(*path)
		if err == nil {
			err = reg.Validate()
		}
		if err != nil {
			fmt.Printf("Registry validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Registry validation passed. Found %d activities.\n", len(reg.Activities))

	case "update":
		cmd := flag.NewFlagSet("update", flag.ExitOnError)
		path := cmd.String("path", defaultRegistryPath, "Path to registry file")
		taskType := cmd.String("taskType", "", "Task type of the activity to update")
		field := cmd.String("field", "", "Field to update (status, version, displayName, description, timeout, retries)")
		value := cmd.String("value", "", "New value for the field")
		_ = cmd.Parse(os.Args[2:])

		if *taskType == "" || *field == "" || *value == "" {
			fmt.Println("Error: taskType, field, and value are required for update.")
			cmd.Usage()
			os.Exit(1)
		}
		if err := updateActivity(*path, *taskType, *field, *value); err != nil {
			fmt.Printf("Error updating activity: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Updated activity %s, field %s to %s\n", *taskType, *field, *value)

	default:
		help()
	}
}

func updateActivity(path, taskType, field, value string) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	activity, ok := reg.Find(taskType)
	if !ok {
		return fmt.Errorf("activity with task type %s not found", taskType)
	}

	switch field {
	case "status":
		activity.ImplementationStatus = value
	case "version":
		activity.Version = value
	case "displayName":
		activity.DisplayName = value
	case "description":
		activity.Description = value
	case "timeout":
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid timeout value: %w", err)
		}
		activity.Timeout = value
	case "retries":
		retries, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid retries value: %w", err)
		}
		activity.Retries = retries
	default:
		return fmt.Errorf("unknown field: %s", field)
	}

	if err := reg.Validate(); err != nil {
		return err
	}
	reg.LastUpdated = time.Now().Format("2006-01-02")
	return saveRegistry(reg, path)
}

func saveRegistry(reg *registry.ActivityRegistry, path string) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}
	return nil
}

func help() {
	fmt.Println(`
Usage: registry-updater <command> [flags]

Commands:
  validate  Validate the activity registry (fields, unique task types, schemas)
  update    Update a field of an existing activity
  help      Show this help message

Examples:
  registry-updater validate -path pkg/registry/activities.json
  registry-updater update -taskType rank-projects-for-user -field timeout -value 45s`)
}
