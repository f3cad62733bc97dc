package main

import (
	"testing"

	appconfig "github.com/drganeshcs/clinic-booking-platform/internal/config"
	"github.com/drganeshcs/clinic-booking-platform/internal/notify"
)

func TestBuildNotifierDefaultsToLog(t *testing.T) {
	cfg := &appconfig.Config{Notifier: "log"}
	if _, ok := buildNotifier(cfg, nil).(*notify.LogNotifier); !ok {
		t.Fatal("expected log notifier by default")
	}

	cfg.Notifier = "something-else"
	if _, ok := buildNotifier(cfg, nil).(*notify.LogNotifier); !ok {
		t.Fatal("unknown notifier names must fall back to log")
	}
}

func TestBuildNotifierEmailWithoutKeyUsesStubSender(t *testing.T) {
	cfg := &appconfig.Config{Notifier: "email", EmailProvider: "sendgrid"}
	if _, ok := buildNotifier(cfg, nil).(*notify.EmailNotifier); !ok {
		t.Fatal("expected email notifier")
	}
}

func TestBuildSessionStoreMemory(t *testing.T) {
	cfg := &appconfig.Config{UseMemoryStore: true}
	store, err := buildSessionStore(cfg, nil)
	if err != nil {
		t.Fatalf("memory store: %v", err)
	}
	if store == nil {
		t.Fatal("expected a store")
	}
}
