//go:build unit

package adapter

import (
	"bytes"
	"context"
	"log/slog"
	"plant-pal/internal/core/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTMLStripper(t *testing.T) {
	s := NewHTMLStripper()

	assert.Equal(t, "Pilea", s.Sanitize("<b>Pilea</b>"))
	assert.Equal(t, "", s.Sanitize(`<script>alert("x")</script>`))
	assert.Equal(t, "Salt & pepper", s.Sanitize("Salt & pepper"))
	assert.Equal(t, "Tom's fern", s.Sanitize("Tom's <i>fern</i>"))
}

func TestLogSink_Record(t *testing.T) {
	buf := &bytes.Buffer{}
	sink := NewLogSink(slog.New(slog.NewJSONHandler(buf, nil)))

	err := sink.Record(context.Background(),
		model.User{ID: "1", Email: DemoEmail},
		model.Plant{ID: 42, Name: "Pilea", Price: 18.5, Category: "Indoor", Benefits: []string{"a", "b"}})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"msg":"new product submitted"`)
	assert.Contains(t, out, `"name":"Pilea"`)
	assert.Contains(t, out, `"user_email":"demo@plantpal.com"`)
	assert.Contains(t, out, `"benefits":2`)
}
