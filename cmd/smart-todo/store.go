package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Kimiya00/smart-todo-app/internal/config"
	"github.com/Kimiya00/smart-todo-app/internal/notify"
	"github.com/Kimiya00/smart-todo-app/internal/store"
	"github.com/Kimiya00/smart-todo-app/internal/storage"
	"github.com/Kimiya00/smart-todo-app/internal/tui"
)

// openStore builds the configured persistence adapter and loads the
// store through it. The returned cleanup flushes the store (best-effort
// teardown resave) and closes the adapter.
func openStore(ctx context.Context) (*store.Store, func(), error) {
	cfg, err := config.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	var adapter storage.Adapter
	switch cfg.StorageBackend {
	case config.BackendRedis:
		adapter, err = storage.NewRedisAdapter(cfg.RedisURL)
	case config.BackendFile, "":
		adapter, err = storage.NewFileAdapter(cfg.DataDir)
	default:
		err = fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
	if err != nil {
		return nil, nil, err
	}

	st := store.Open(ctx, adapter)
	cleanup := func() {
		_ = st.Flush(ctx)
		_ = adapter.Close()
	}
	return st, cleanup, nil
}

// reportSaveWarning surfaces a persistence failure to the user after a
// mutation. The operation itself has already succeeded in memory.
func reportSaveWarning(st *store.Store) {
	if warn := st.SaveWarning(); warn != nil {
		fmt.Fprintln(os.Stderr, tui.WarningStyle.Render("warning: changes were not saved: "+warn.Error()))
	}
}

// sendNotification sends OS-native feedback when enabled in config.
func sendNotification(title, message string) {
	cfg, err := config.Get()
	if err != nil || !cfg.Notifications {
		return
	}
	notify.Send(title, message)
}

// promptConfirm asks the user to confirm a destructive operation.
func promptConfirm(question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// parseTaskID parses a task id argument.
func parseTaskID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}
