package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleConfig = `id: bot-test
metricPort: 5854
log:
  level: info
nats:
  url: nats://127.0.0.1:4222
trivia:
  apiUrl: https://example.com/api
  cacheTTL: 600
games:
  - merels
  - trivia_quiz
`

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "application.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfigFile(t, sampleConfig)
	if err := Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if Conf.ID != "bot-test" || Conf.MetricPort != 5854 {
		t.Fatalf("base config not loaded: %+v", Conf.BaseConfig)
	}
	if Conf.NatsConfig.URL != "nats://127.0.0.1:4222" {
		t.Fatalf("nats config not loaded: %+v", Conf.NatsConfig)
	}
	if Conf.TriviaConf.APIURL != "https://example.com/api" || Conf.TriviaConf.CacheTTL != 600 {
		t.Fatalf("trivia config not loaded: %+v", Conf.TriviaConf)
	}
	if len(Conf.Games) != 2 || Conf.Games[0] != "merels" {
		t.Fatalf("games list not loaded: %v", Conf.Games)
	}
}

func TestLoadRequiresNodeID(t *testing.T) {
	path := writeConfigFile(t, "metricPort: 5854\n")
	if err := Load(path); err == nil {
		t.Fatal("expected an error when no node ID is configured")
	}

	t.Setenv("NODE_ID", "bot-env")
	if err := Load(path); err != nil {
		t.Fatalf("Load with NODE_ID: %v", err)
	}
	if Conf.ID != "bot-env" {
		t.Fatalf("NODE_ID override not applied: %q", Conf.ID)
	}
}

func TestWatchFiresOnRewrite(t *testing.T) {
	path := writeConfigFile(t, sampleConfig)

	changed := make(chan struct{}, 1)
	Watch(path, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})

	// 给 watcher 一点建立监听的时间再改写文件
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte(sampleConfig+"\n"), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("expected the watch callback to fire after the rewrite")
	}
}
