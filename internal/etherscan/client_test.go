package etherscan

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/baharkarakas/ethscan-backend/internal/apperr"
)

type rtFunc func(*http.Request) (*http.Response, error)

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func mkBody(status int, body string) *http.Response {
	return &http.Response{StatusCode: status, Body: io.NopCloser(bytes.NewReader([]byte(body))), Header: http.Header{"Content-Type": []string{"application/json"}}}
}

func newClient(key string, f rtFunc) *Client {
	return New(Config{BaseURL: "http://unit-test", APIKey: key, ChainID: 1}, &http.Client{Transport: f})
}

func TestClient_Balance_QueryShape(t *testing.T) {
	var seen *http.Request
	c := newClient("KEY", func(r *http.Request) (*http.Response, error) {
		seen = r
		return mkBody(200, `{"status":"1","message":"OK","result":"1000000000000000000"}`), nil
	})
	got, err := c.Balance(context.Background(), "0xabc")
	if err != nil || got != "1000000000000000000" {
		t.Fatalf("got=%q err=%v", got, err)
	}
	if seen.Method != http.MethodGet || seen.URL.Path != "/v2/api" {
		t.Fatalf("unexpected request %s %s", seen.Method, seen.URL.Path)
	}
	q := seen.URL.Query()
	for k, want := range map[string]string{
		"module": "account", "action": "balance", "address": "0xabc",
		"tag": "latest", "chainId": "1", "apiKey": "KEY",
	} {
		if q.Get(k) != want {
			t.Errorf("param %s=%q want %q", k, q.Get(k), want)
		}
	}
}

func TestClient_ProxyActions(t *testing.T) {
	c := newClient("KEY", func(r *http.Request) (*http.Response, error) {
		q := r.URL.Query()
		if q.Get("module") != "proxy" {
			t.Errorf("module=%s", q.Get("module"))
		}
		switch q.Get("action") {
		case "eth_blockNumber":
			return mkBody(200, `{"jsonrpc":"2.0","id":83,"result":"0x1e240"}`), nil
		case "eth_gasPrice":
			return mkBody(200, `{"jsonrpc":"2.0","id":73,"result":"0x4a817c800"}`), nil
		}
		return mkBody(404, "nope"), nil
	})
	bn, err := c.BlockNumber(context.Background())
	if err != nil || bn != "0x1e240" {
		t.Fatalf("bn=%q err=%v", bn, err)
	}
	gp, err := c.GasPrice(context.Background())
	if err != nil || gp != "0x4a817c800" {
		t.Fatalf("gp=%q err=%v", gp, err)
	}
}

func TestClient_MissingAPIKey(t *testing.T) {
	calls := 0
	c := newClient("", func(r *http.Request) (*http.Response, error) {
		calls++
		return mkBody(200, `{}`), nil
	})
	_, err := c.Balance(context.Background(), "0xabc")
	if !apperr.IsConfiguration(err) {
		t.Fatalf("want ConfigurationError, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("network touched %d times", calls)
	}
}

func TestClient_UpstreamFailures(t *testing.T) {
	cases := []struct {
		name string
		resp func() (*http.Response, error)
	}{
		{"http 500", func() (*http.Response, error) { return mkBody(500, "down"), nil }},
		{"http 429", func() (*http.Response, error) { return mkBody(429, "slow down"), nil }},
		{"transport", func() (*http.Response, error) { return nil, errors.New("dial tcp: refused") }},
		{"garbage body", func() (*http.Response, error) { return mkBody(200, `<html>`), nil }},
		{"status 0", func() (*http.Response, error) {
			return mkBody(200, `{"status":"0","message":"NOTOK","result":"Invalid API Key"}`), nil
		}},
		{"rpc error", func() (*http.Response, error) {
			return mkBody(200, `{"jsonrpc":"2.0","id":1,"error":{"code":-32000,"message":"oops"}}`), nil
		}},
		{"non-string result", func() (*http.Response, error) {
			return mkBody(200, `{"status":"1","message":"OK","result":{"x":1}}`), nil
		}},
		{"empty result", func() (*http.Response, error) {
			return mkBody(200, `{"status":"1","message":"OK","result":""}`), nil
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			calls := 0
			c := newClient("KEY", func(r *http.Request) (*http.Response, error) {
				calls++
				return tc.resp()
			})
			_, err := c.Balance(context.Background(), "0xabc")
			if !apperr.IsUpstream(err) {
				t.Fatalf("want UpstreamError, got %v", err)
			}
			if calls != 1 {
				t.Fatalf("expected a single attempt, got %d", calls)
			}
		})
	}
}

func TestClient_TxList(t *testing.T) {
	var seen *http.Request
	c := newClient("KEY", func(r *http.Request) (*http.Response, error) {
		seen = r
		return mkBody(200, `{"status":"1","message":"OK","result":[
			{"blockNumber":"14923678","hash":"0xh1","from":"0xa","to":"0xb","value":"1500000000000000000","isError":"0"},
			{"blockNumber":"14923600","hash":"0xh2","from":"0xb","to":"0xa","value":"0","isError":"1"}]}`), nil
	})
	txs, err := c.TxList(context.Background(), "0xa", TxListQuery{Page: 2, Offset: 5, Sort: "asc"})
	if err != nil {
		t.Fatal(err)
	}
	if len(txs) != 2 || txs[0].Hash != "0xh1" || txs[1].IsError != "1" {
		t.Fatalf("unexpected txs: %+v", txs)
	}
	q := seen.URL.Query()
	if q.Get("action") != "txlist" || q.Get("page") != "2" || q.Get("offset") != "5" ||
		q.Get("sort") != "asc" || q.Get("startblock") != "0" || q.Get("endblock") != "99999999" {
		t.Fatalf("unexpected query: %s", seen.URL.RawQuery)
	}
}

func TestClient_TxListEmpty(t *testing.T) {
	c := newClient("KEY", func(r *http.Request) (*http.Response, error) {
		return mkBody(200, `{"status":"0","message":"No transactions found","result":[]}`), nil
	})
	txs, err := c.TxList(context.Background(), "0xa", TxListQuery{})
	if err != nil {
		t.Fatal(err)
	}
	if txs == nil || len(txs) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", txs)
	}
}

func TestTxListQuery_Defaults(t *testing.T) {
	q := TxListQuery{Sort: "sideways"}.withDefaults()
	if q.Page != 1 || q.Offset != 10 || q.Sort != "desc" || q.EndBlock != 99999999 {
		t.Fatalf("defaults: %+v", q)
	}
}
