package mis

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetStockInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stock/api/getStockInfo.jsp" {
			t.Fatalf("path=%s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("ex_ch") != "tse_2330.tw|otc_6488.tw" {
			t.Fatalf("ex_ch=%s", q.Get("ex_ch"))
		}
		if q.Get("json") != "1" || q.Get("delay") != "0" {
			t.Fatalf("query=%v", q)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"msgArray":[{"c":"2330","n":"台積電","z":"1190","tv":"25","tlong":"1735693200000","b":"1185_1180___","a":"1190_1195___","o":"1180","y":"1175"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "Mozilla/5.0")
	msgs, err := c.GetStockInfo(context.Background(), []string{"tse_2330.tw", "otc_6488.tw"})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("msgs=%d want=1", len(msgs))
	}
	m := msgs[0]
	if m.Code != "2330" || m.Price != "1190" || m.TimeMillis != "1735693200000" {
		t.Fatalf("msg=%+v", m)
	}
}

func TestGetStockInfo_EmptyMsgArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"rtmessage":"ok","rtcode":"0000"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "")
	msgs, err := c.GetStockInfo(context.Background(), []string{"tse_2330.tw"})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("msgs=%d want=0", len(msgs))
	}
}

func TestGetStockInfo_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream busy", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "")
	if _, err := c.GetStockInfo(context.Background(), []string{"tse_2330.tw"}); err == nil {
		t.Fatalf("want error on 503")
	}
}

func TestGetStockInfo_NoChannels(t *testing.T) {
	c := NewClient(nil, "https://mis.twse.com.tw", "")
	msgs, err := c.GetStockInfo(context.Background(), nil)
	if err != nil || msgs != nil {
		t.Fatalf("msgs=%v err=%v", msgs, err)
	}
}
