package etherscan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/baharkarakas/ethscan-backend/internal/apperr"
	"github.com/baharkarakas/ethscan-backend/internal/metrics"
)

const (
	DefaultBaseURL = "https://api.etherscan.io"
	apiPath        = "/v2/api"

	// returned with status "0" by txlist for addresses without history
	msgNoTransactions = "No transactions found"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	BaseURL string
	APIKey  string
	ChainID int
}

// Client issues GET calls against the Etherscan v2 multichain API.
// There are no retries; a failed call is returned as an UpstreamError.
type Client struct {
	baseURL string
	apiKey  string
	chainID int
	hc      httpDoer
}

// New builds a client. A nil hc falls back to http.DefaultClient.
func New(cfg Config, hc *http.Client) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	chainID := cfg.ChainID
	if chainID == 0 {
		chainID = 1
	}
	var doer httpDoer = http.DefaultClient
	if hc != nil {
		doer = hc
	}
	return &Client{baseURL: base, apiKey: cfg.APIKey, chainID: chainID, hc: doer}
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Balance returns the account's wei balance at the latest block.
func (c *Client) Balance(ctx context.Context, address string) (string, error) {
	return c.getString(ctx, "balance", url.Values{
		"module":  {"account"},
		"action":  {"balance"},
		"address": {address},
		"tag":     {"latest"},
	})
}

// BlockNumber returns the head block as reported upstream (usually 0x-hex).
func (c *Client) BlockNumber(ctx context.Context) (string, error) {
	return c.getString(ctx, "eth_blockNumber", url.Values{
		"module": {"proxy"},
		"action": {"eth_blockNumber"},
	})
}

// GasPrice returns the current gas price in wei (usually 0x-hex).
func (c *Client) GasPrice(ctx context.Context) (string, error) {
	return c.getString(ctx, "eth_gasPrice", url.Values{
		"module": {"proxy"},
		"action": {"eth_gasPrice"},
	})
}

type TxListQuery struct {
	StartBlock uint64
	EndBlock   uint64
	Page       int
	Offset     int
	Sort       string // asc|desc
}

func (q TxListQuery) withDefaults() TxListQuery {
	if q.EndBlock == 0 {
		q.EndBlock = 99999999
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Offset <= 0 {
		q.Offset = 10
	}
	if q.Sort != "asc" {
		q.Sort = "desc"
	}
	return q
}

// Tx is one normal transaction as listed by account/txlist.
type Tx struct {
	BlockNumber       string `json:"blockNumber"`
	BlockHash         string `json:"blockHash"`
	TimeStamp         string `json:"timeStamp"`
	Hash              string `json:"hash"`
	Nonce             string `json:"nonce"`
	TransactionIndex  string `json:"transactionIndex"`
	From              string `json:"from"`
	To                string `json:"to"`
	Value             string `json:"value"`
	Gas               string `json:"gas"`
	GasPrice          string `json:"gasPrice"`
	Input             string `json:"input"`
	MethodID          string `json:"methodId"`
	FunctionName      string `json:"functionName"`
	ContractAddress   string `json:"contractAddress"`
	CumulativeGasUsed string `json:"cumulativeGasUsed"`
	TxReceiptStatus   string `json:"txreceipt_status"`
	GasUsed           string `json:"gasUsed"`
	Confirmations     string `json:"confirmations"`
	IsError           string `json:"isError"`
}

// TxList returns a page of normal transactions for address.
func (c *Client) TxList(ctx context.Context, address string, q TxListQuery) ([]Tx, error) {
	q = q.withDefaults()
	env, err := c.do(ctx, "txlist", url.Values{
		"module":     {"account"},
		"action":     {"txlist"},
		"address":    {address},
		"startblock": {strconv.FormatUint(q.StartBlock, 10)},
		"endblock":   {strconv.FormatUint(q.EndBlock, 10)},
		"page":       {strconv.Itoa(q.Page)},
		"offset":     {strconv.Itoa(q.Offset)},
		"sort":       {q.Sort},
	})
	if err != nil {
		return nil, err
	}
	out := []Tx{}
	if len(env.Result) == 0 || string(env.Result) == "null" {
		return out, nil
	}
	if err := json.Unmarshal(env.Result, &out); err != nil {
		return nil, &apperr.UpstreamError{Action: "txlist", Msg: "malformed result", Err: err}
	}
	return out, nil
}

func (c *Client) getString(ctx context.Context, action string, params url.Values) (string, error) {
	env, err := c.do(ctx, action, params)
	if err != nil {
		return "", err
	}
	var s string
	if err := json.Unmarshal(env.Result, &s); err != nil || s == "" {
		if err == nil {
			err = fmt.Errorf("empty result")
		}
		return "", &apperr.UpstreamError{Action: action, Msg: "malformed result", Err: err}
	}
	return s, nil
}

func (c *Client) do(ctx context.Context, action string, params url.Values) (*envelope, error) {
	if c.apiKey == "" {
		return nil, &apperr.ConfigurationError{Setting: "ETHERSCAN_API_KEY"}
	}
	params.Set("chainId", strconv.Itoa(c.chainID))
	params.Set("apiKey", c.apiKey)

	begin := time.Now()
	env, err := c.roundTrip(ctx, action, params)
	metrics.EtherscanLatency.WithLabelValues(action).Observe(time.Since(begin).Seconds())
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.EtherscanRequests.WithLabelValues(action, outcome).Inc()
	return env, err
}

func (c *Client) roundTrip(ctx context.Context, action string, params url.Values) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+apiPath+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, &apperr.UpstreamError{Action: action, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &apperr.UpstreamError{Action: action, StatusCode: resp.StatusCode, Msg: string(b)}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &apperr.UpstreamError{Action: action, StatusCode: resp.StatusCode, Msg: "malformed body", Err: err}
	}
	if env.Error != nil {
		return nil, &apperr.UpstreamError{Action: action, Msg: fmt.Sprintf("rpc %d: %s", env.Error.Code, env.Error.Message)}
	}
	if env.Status == "0" {
		if env.Message == msgNoTransactions {
			env.Result = nil
			return &env, nil
		}
		// account-module failures carry the reason in result
		var reason string
		_ = json.Unmarshal(env.Result, &reason)
		msg := env.Message
		if reason != "" {
			msg += ": " + reason
		}
		return nil, &apperr.UpstreamError{Action: action, Msg: msg}
	}
	return &env, nil
}
