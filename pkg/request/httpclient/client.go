package httpclient

import (
	"crypto/tls"
	"net/http"
	"time"

	"github.com/gojek/heimdall/v7"
	"github.com/gojek/heimdall/v7/hystrix"
	"github.com/opentracing-contrib/go-stdlib/nethttp"
)

// ConnectionPoolConfig tunes the underlying http.Transport. Durations are
// in milliseconds.
type ConnectionPoolConfig struct {
	MaxIdleConns        int `json:"max_idle_conns" mapstructure:"max_idle_conns"`
	MaxIdleConnsPerHost int `json:"max_idle_conns_per_host" mapstructure:"max_idle_conns_per_host"`
	MaxConnsPerHost     int `json:"max_conns_per_host" mapstructure:"max_conns_per_host"`
	IdleConnTimeout     int `json:"idle_conn_timeout" mapstructure:"idle_conn_timeout"`
	Timeout             int `json:"timeout" mapstructure:"timeout"`
}

// HystrixResiliencyConfig tunes the circuit breaker around the client.
// Timeouts are in milliseconds.
type HystrixResiliencyConfig struct {
	HystrixTimeout         int `json:"hystrix_timeout" mapstructure:"hystrix_timeout"`
	MaxConcurrentRequests  int `json:"max_concurrent_requests" mapstructure:"max_concurrent_requests"`
	ErrorPercentThreshold  int `json:"error_percent_threshold" mapstructure:"error_percent_threshold"`
	SleepWindow            int `json:"sleep_window" mapstructure:"sleep_window"`
	RequestVolumeThreshold int `json:"request_volume_threshold" mapstructure:"request_volume_threshold"`
}

func (c ConnectionPoolConfig) withDefaults() ConnectionPoolConfig {
	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = 100
	}
	if c.MaxIdleConnsPerHost == 0 {
		c.MaxIdleConnsPerHost = 10
	}
	if c.IdleConnTimeout == 0 {
		c.IdleConnTimeout = 90000
	}
	if c.Timeout == 0 {
		c.Timeout = 10000
	}
	return c
}

func (c HystrixResiliencyConfig) withDefaults() HystrixResiliencyConfig {
	if c.HystrixTimeout == 0 {
		c.HystrixTimeout = 15000
	}
	if c.MaxConcurrentRequests == 0 {
		c.MaxConcurrentRequests = 100
	}
	if c.ErrorPercentThreshold == 0 {
		c.ErrorPercentThreshold = 50
	}
	if c.SleepWindow == 0 {
		c.SleepWindow = 5000
	}
	if c.RequestVolumeThreshold == 0 {
		c.RequestVolumeThreshold = 20
	}
	return c
}

// InitializeClient builds a hystrix-wrapped heimdall client named
// commandName, with a traced, pooled transport. tlsConfig may be nil.
func InitializeClient(
	commandName string,
	poolCfg ConnectionPoolConfig,
	resiliencyCfg HystrixResiliencyConfig,
	retrier heimdall.Retriable,
	retryCount int,
	tlsConfig *tls.Config,
) (heimdall.Doer, error) {
	poolCfg = poolCfg.withDefaults()
	resiliencyCfg = resiliencyCfg.withDefaults()

	transport := &http.Transport{
		MaxIdleConns:        poolCfg.MaxIdleConns,
		MaxIdleConnsPerHost: poolCfg.MaxIdleConnsPerHost,
		MaxConnsPerHost:     poolCfg.MaxConnsPerHost,
		IdleConnTimeout:     time.Duration(poolCfg.IdleConnTimeout) * time.Millisecond,
	}
	if tlsConfig != nil {
		transport.TLSClientConfig = tlsConfig
	}

	httpClient := &http.Client{
		Timeout: time.Duration(poolCfg.Timeout) * time.Millisecond,
		// trace outgoing requests at the transport level
		Transport: &nethttp.Transport{RoundTripper: transport},
	}

	opts := []hystrix.Option{
		hystrix.WithCommandName(commandName),
		hystrix.WithHTTPClient(httpClient),
		hystrix.WithHTTPTimeout(time.Duration(poolCfg.Timeout) * time.Millisecond),
		hystrix.WithHystrixTimeout(time.Duration(resiliencyCfg.HystrixTimeout) * time.Millisecond),
		hystrix.WithMaxConcurrentRequests(resiliencyCfg.MaxConcurrentRequests),
		hystrix.WithErrorPercentThreshold(resiliencyCfg.ErrorPercentThreshold),
		hystrix.WithSleepWindow(resiliencyCfg.SleepWindow),
		hystrix.WithRequestVolumeThreshold(resiliencyCfg.RequestVolumeThreshold),
	}
	if retrier != nil {
		opts = append(opts,
			hystrix.WithRetrier(retrier),
			hystrix.WithRetryCount(retryCount),
		)
	}

	return hystrix.NewClient(opts...), nil
}
