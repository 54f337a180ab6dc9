package nlptest

import (
	"context"
	"errors"
	"testing"

	"github.com/cmsdko/lingua/internal/lang"
	"github.com/cmsdko/lingua/internal/nlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubDeterministic(t *testing.T) {
	p := New()
	a, err := p.Annotate(context.Background(), "The boy is taking cookies. He falls!", lang.English)
	require.NoError(t, err)
	b, err := p.Annotate(context.Background(), "The boy is taking cookies. He falls!", lang.English)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, 2, p.Calls())
	require.NoError(t, a.Validate())
	require.Len(t, a.Sentences, 2)
	assert.Equal(t, nlp.Span{Start: 0, End: 6}, a.Sentences[0])
	assert.Equal(t, "ROOT", a.Tokens[3].Dep)
	assert.Equal(t, "VBG", a.Tokens[3].Tag)
	assert.Equal(t, "cookie", a.Tokens[4].Lemma)
	assert.True(t, a.Tokens[5].IsPunct)
}

func TestStubError(t *testing.T) {
	p := &Provider{Err: errors.New("boom")}
	_, err := p.Annotate(context.Background(), "x", lang.English)
	assert.EqualError(t, err, "boom")
}
