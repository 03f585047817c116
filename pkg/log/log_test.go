package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()

	buf := &bytes.Buffer{}
	logrus.SetOutput(buf)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})
	logrus.SetLevel(logrus.DebugLevel)
	L = &logger{entry: logrus.NewEntry(logrus.StandardLogger())}

	return buf
}

func TestWithFields_DevelopmentFiltersNoise(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	buf := captureOutput(t)

	L.WithFields(Fields{
		"customer_id": "C1",
		"feature":     "region",
		"user_agent":  "curl",
	}).Info("describing: ok")

	out := buf.String()
	assert.Contains(t, out, "customer_id=C1")
	assert.Contains(t, out, "feature=region")
	assert.NotContains(t, out, "user_agent")
}

func TestWithFields_ProductionKeepsEverything(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	buf := captureOutput(t)

	L.WithField("user_agent", "curl").Info("request")

	assert.Contains(t, buf.String(), "user_agent=curl")
}

func TestForContext_CorrelationID(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	buf := captureOutput(t)

	ctx, id := WithCorrelationID(context.Background())
	assert.Equal(t, id, GetCorrelationID(ctx))
	assert.Empty(t, GetCorrelationID(context.Background()))

	ForContext(ctx).Info("predicting: done")

	assert.Contains(t, buf.String(), "correlation_id="+id)
}
