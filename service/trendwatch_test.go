package service

import (
	"strings"
	"testing"
)

func TestTrendWatchConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     TrendWatchConfig
		wantErr []string
	}{
		{
			name: "valid config",
			cfg: TrendWatchConfig{
				Pairs:          []string{"NIFTYBEES:5m", "GOLDBEES:15m"},
				TelegramToken:  "token",
				TelegramChatID: "chatid",
				DBEndpoint:     "http://localhost:4001",
			},
			wantErr: nil,
		},
		{
			name: "missing pairs",
			cfg: TrendWatchConfig{
				TelegramToken:  "token",
				TelegramChatID: "chatid",
				DBEndpoint:     "http://localhost:4001",
			},
			wantErr: []string{"no pairs provided for trend watch service"},
		},
		{
			name: "missing telegram credentials",
			cfg: TrendWatchConfig{
				Pairs:      []string{"NIFTYBEES:5m"},
				DBEndpoint: "http://localhost:4001",
			},
			wantErr: []string{
				"telegram token cannot be an empty string",
				"telegram chat id cannot be an empty string",
			},
		},
		{
			name: "missing database endpoint",
			cfg: TrendWatchConfig{
				Pairs:          []string{"NIFTYBEES:5m"},
				TelegramToken:  "token",
				TelegramChatID: "chatid",
			},
			wantErr: []string{"database endpoint cannot be an empty string"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if len(tt.wantErr) == 0 {
				if err != nil {
					t.Errorf("expected no error, got: %v", err)
				}
				return
			}

			if err == nil {
				t.Errorf("expected error(s) %v, got none", tt.wantErr)
				return
			}
			for _, want := range tt.wantErr {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("expected error to contain %q, got %v", want, err)
				}
			}
		})
	}
}
