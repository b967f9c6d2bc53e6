// Package http は外部API呼び出し用のHTTPクライアントを提供します。
package http

import (
	"net"
	"net/http"
	"time"
)

const (
	dialTimeout           = 5 * time.Second
	keepAlive             = 30 * time.Second
	tlsHandshakeTimeout   = 5 * time.Second
	idleConnTimeout       = 90 * time.Second
	maxIdleConns          = 100
	maxIdleConnsPerHost   = 10
	expectContinueTimeout = time.Second
)

// NewHTTPClient は外部API呼び出し用に設定されたHTTPクライアントを作成します。
//
// timeout はリクエスト全体（接続からレスポンス本文の読み込みまで）の上限です。
// 0以下の場合、レスポンスヘッダー待ちにも上限を設けません。
// 呼び出し先は1ホスト（Polygon）に限られるため、ホストあたりのアイドル接続を多めに保持します。
// プロキシは HTTP_PROXY などの環境変数に従います。
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   dialTimeout,
			KeepAlive: keepAlive,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          maxIdleConns,
		MaxIdleConnsPerHost:   maxIdleConnsPerHost,
		IdleConnTimeout:       idleConnTimeout,
		TLSHandshakeTimeout:   tlsHandshakeTimeout,
		ExpectContinueTimeout: expectContinueTimeout,
	}
	if timeout > 0 {
		t.ResponseHeaderTimeout = timeout
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
