package push

import (
	"Touchline/internal/api/config"
	"Touchline/internal/pkg/consts"
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Message 推送网关请求体
type Message struct {
	Token   string `json:"token"`
	Title   string `json:"title"`
	Content string `json:"content"`
	PushID  string `json:"push_id"`
}

// Client 按设备类型把消息投递到对应网关
type Client interface {
	Send(ctx context.Context, deviceType int8, msg *Message) error
}

type restyClient struct {
	http       *resty.Client
	iosURL     string
	androidURL string
}

func NewClient(cfg config.PushConfig) Client {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Api-Key", cfg.ApiKey)

	return &restyClient{
		http:       client,
		iosURL:     cfg.IOSURL,
		androidURL: cfg.AndroidURL,
	}
}

func (s *restyClient) Send(ctx context.Context, deviceType int8, msg *Message) error {
	var url string
	switch deviceType {
	case consts.DeviceTypeIOS:
		url = s.iosURL
	case consts.DeviceTypeAndroid:
		url = s.androidURL
	default:
		return fmt.Errorf("unknown device type %d", deviceType)
	}
	if url == "" {
		return fmt.Errorf("push gateway for device type %d is not configured", deviceType)
	}

	resp, err := s.http.R().SetContext(ctx).SetBody(msg).Post(url)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("push gateway responded %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}
