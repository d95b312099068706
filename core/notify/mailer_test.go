package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSend_DisabledIsNoOp(t *testing.T) {
	mailer := NewMailer(Config{Enabled: false}, zap.NewNop())

	err := mailer.Send(context.Background(), "subject", "body")
	assert.NoError(t, err)
}

func TestSend_InvalidAddressesFailFast(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{
			name: "bad sender",
			cfg:  Config{Enabled: true, From: "not-an-address", To: "ops@example.com"},
		},
		{
			name: "empty recipient",
			cfg:  Config{Enabled: true, From: "sync@example.com", To: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailer := NewMailer(tt.cfg, zap.NewNop())
			err := mailer.Send(context.Background(), "subject", "body")
			assert.Error(t, err, "address problems surface before any dial")
		})
	}
}
