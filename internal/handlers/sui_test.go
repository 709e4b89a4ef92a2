package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/verakita/verakita-api/internal/sui"
)

type fakeChain struct {
	epoch   string
	balance sui.Balance
	objects sui.ObjectsPage
	err     error
}

func (f fakeChain) LatestEpoch(context.Context) (string, error) { return f.epoch, f.err }
func (f fakeChain) Balance(context.Context, string) (sui.Balance, error) {
	return f.balance, f.err
}
func (f fakeChain) OwnedObjects(context.Context, string) (sui.ObjectsPage, error) {
	return f.objects, f.err
}

func TestSuiHandler_Transaction(t *testing.T) {
	h := &SuiHandler{}

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"valid", `{"transaction":{"kind":"moveCall"},"sender":"0xme"}`, 200},
		{"string transaction", `{"transaction":"AAEC","sender":"0xme"}`, 200},
		{"missing sender", `{"transaction":{"kind":"moveCall"}}`, 400},
		{"missing transaction", `{"sender":"0xme"}`, 400},
		{"null transaction", `{"transaction":null,"sender":"0xme"}`, 400},
		{"empty body", `{}`, 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.Transaction(rr, httptest.NewRequest("POST", "/api/sui/transaction", strings.NewReader(tt.body)))
			if rr.Code != tt.status {
				t.Fatalf("Transaction status: got %d, want %d", rr.Code, tt.status)
			}
			env := decodeEnvelope(t, rr, nil)
			if tt.status == http.StatusOK {
				if !env.Success || env.Message != "Transactions must be signed client-side" || string(env.Data) != "{}" {
					t.Errorf("unexpected envelope: %+v", env)
				}
			} else if env.Error != "Missing transaction or sender" {
				t.Errorf("error: got %q", env.Error)
			}
		})
	}
}

func TestSuiHandler_Reads(t *testing.T) {
	h := &SuiHandler{
		Network: "testnet",
		Chain: fakeChain{
			epoch:   "512",
			balance: sui.Balance{CoinType: "0x2::sui::SUI", CoinObjectCount: 1, TotalBalance: "2500000000"},
			objects: sui.ObjectsPage{Data: []sui.ObjectResponse{{Data: &sui.ObjectRef{ObjectID: "0xa"}}}},
		},
	}

	rr := httptest.NewRecorder()
	h.Epoch(rr, httptest.NewRequest("GET", "/api/sui/epoch", nil))
	var epoch map[string]string
	decodeEnvelope(t, rr, &epoch)
	if epoch["epoch"] != "512" || epoch["network"] != "testnet" {
		t.Errorf("unexpected epoch: %v", epoch)
	}

	rr = httptest.NewRecorder()
	h.Balance(rr, requestWithChiURLParams("GET", "/api/sui/balance/0xabc", nil, map[string]string{"address": "0xabc"}))
	var bal struct {
		Address      string `json:"address"`
		TotalBalance string `json:"totalBalance"`
		SUI          string `json:"sui"`
	}
	decodeEnvelope(t, rr, &bal)
	if bal.Address != "0xabc" || bal.TotalBalance != "2500000000" || bal.SUI != "2.5000" {
		t.Errorf("unexpected balance: %+v", bal)
	}

	rr = httptest.NewRecorder()
	h.Objects(rr, requestWithChiURLParams("GET", "/api/sui/objects/0xabc", nil, map[string]string{"address": "0xabc"}))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"0xa"`) {
		t.Errorf("Objects: got %d %s", rr.Code, rr.Body.String())
	}
}

func TestSuiHandler_RPCFailure(t *testing.T) {
	h := &SuiHandler{Chain: fakeChain{err: errors.New("dial tcp: refused")}}

	rr := httptest.NewRecorder()
	h.Epoch(rr, httptest.NewRequest("GET", "/api/sui/epoch", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("Epoch status: got %d, want 500", rr.Code)
	}
	if env := decodeEnvelope(t, rr, nil); env.Success || env.Error != "Failed to fetch epoch" {
		t.Errorf("unexpected envelope: %+v", env)
	}
}
