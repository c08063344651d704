package server

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/goleak"

	"github.com/halvardlie/spellwright/pkg/config"
	"github.com/halvardlie/spellwright/pkg/spellcheck"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestDictionary(t *testing.T) *spellcheck.Dictionary {
	t.Helper()
	aff := "SFX S Y 1\nSFX S 0 s .\n"
	dic := "2\nhello\ncat/S\n"
	return spellcheck.New(aff, dic, nil)
}

func exchangeOne(t *testing.T, req Request) []byte {
	t.Helper()

	reqBytes, err := msgpack.Marshal(req)
	require.NoError(t, err)

	var out bytes.Buffer
	srv := &Server{
		dict:   newTestDictionary(t),
		cfg:    config.DefaultConfig(),
		reader: bytes.NewReader(reqBytes),
		writer: &out,
	}
	require.NoError(t, srv.Start(context.Background()))
	return out.Bytes()
}

func TestServerCheckKnownWord(t *testing.T) {
	out := exchangeOne(t, Request{Kind: "check", ID: "1", Word: "hello"})

	var resp CheckResponse
	require.NoError(t, msgpack.Unmarshal(out, &resp))
	require.Equal(t, "1", resp.ID)
	require.True(t, resp.Known)
}

func TestServerCheckUnknownWord(t *testing.T) {
	out := exchangeOne(t, Request{Kind: "check", ID: "2", Word: "zzzqqq"})

	var resp CheckResponse
	require.NoError(t, msgpack.Unmarshal(out, &resp))
	require.False(t, resp.Known)
}

func TestServerSuggest(t *testing.T) {
	out := exchangeOne(t, Request{Kind: "suggest", ID: "3", Word: "helo", MaxDist: 2, Limit: 5})

	var resp SuggestResponse
	require.NoError(t, msgpack.Unmarshal(out, &resp))
	require.Equal(t, "3", resp.ID)
	require.Contains(t, resp.Words, "hello")
}

func TestServerMutateAddThenCheck(t *testing.T) {
	dict := newTestDictionary(t)
	var out bytes.Buffer
	srv := &Server{dict: dict, cfg: config.DefaultConfig(), writer: &out}

	enc := msgpack.NewEncoder(&out)
	srv.handleMutate(enc, Request{ID: "4", Word: "zyzzyva", Action: "add"})

	var resp MutateResponse
	require.NoError(t, msgpack.Unmarshal(out.Bytes(), &resp))
	require.Equal(t, "ok", resp.Status)
	require.True(t, dict.CheckExact("zyzzyva"))
}

func TestServerUnknownKind(t *testing.T) {
	out := exchangeOne(t, Request{Kind: "bogus", ID: "5"})

	var resp ErrorResponse
	require.NoError(t, msgpack.Unmarshal(out, &resp))
	require.Equal(t, 400, resp.Code)
}
