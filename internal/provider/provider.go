// Package provider is the client for the external video generation service.
//
// A generation request is submitted once and answered with a provider-assigned
// task identifier; the finished artifact is announced later through a webhook
// and downloaded with Fetch.
package provider

import (
	"context"
	"io"
)

// Client submits generation requests and downloads finished artifacts.
type Client interface {
	// Submit asks the provider to generate a video for prompt and returns the
	// provider's task identifier. Failures wrap domain.ErrUpstream,
	// domain.ErrUpstreamRejected or domain.ErrUpstreamContract.
	Submit(ctx context.Context, prompt string) (string, error)

	// Fetch downloads the artifact at url into w and returns the number of
	// bytes written.
	Fetch(ctx context.Context, url string, w io.Writer) (int64, error)
}

// CallbackPayload is the body the provider posts to the webhook.
type CallbackPayload struct {
	Code int          `json:"code"`
	Msg  string       `json:"msg"`
	Data CallbackData `json:"data"`
}

// CallbackData carries the task identifier and result location.
type CallbackData struct {
	TaskID string       `json:"taskId"`
	Info   CallbackInfo `json:"info"`
}

// CallbackInfo lists the URLs of the generated artifacts.
type CallbackInfo struct {
	ResultURLs []string `json:"resultUrls"`
}

// ResultURL returns the first result URL, or "" if there is none.
func (p CallbackPayload) ResultURL() string {
	for _, u := range p.Data.Info.ResultURLs {
		if u != "" {
			return u
		}
	}
	return ""
}
