package utils

import (
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"
)

// ServiceAddress returns the host:port a URL dials, with the scheme's default port
func ServiceAddress(serviceURL string) (string, error) {
	u, err := url.Parse(serviceURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("invalid URL %q: missing host", serviceURL)
	}

	port := u.Port()
	if port == "" {
		port = "80"
		if u.Scheme == "https" {
			port = "443"
		}
	}
	return net.JoinHostPort(u.Hostname(), port), nil
}

// Dial reports whether something accepts TCP connections at address
func Dial(address string, timeout time.Duration) error {
	conn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	return conn.Close()
}

// CheckHealth dials the server behind healthURL, then requires a 200 from it
func CheckHealth(healthURL string, timeout time.Duration) error {
	address, err := ServiceAddress(healthURL)
	if err != nil {
		return err
	}
	if err := Dial(address, timeout); err != nil {
		return err
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(healthURL)
	if err != nil {
		return fmt.Errorf("health request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health endpoint returned %d", resp.StatusCode)
	}
	return nil
}
