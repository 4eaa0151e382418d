package storage

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/cloudfront/sign"
)

// CDNSigner issues date-bound signed URLs for a CloudFront-style
// distribution fronting the storage bucket. Unlike backend presigning,
// CDN URLs are bound only to the expiry date, not to a content type.
type CDNSigner struct {
	domain string
	signer *sign.URLSigner
}

// NewCDNSigner builds a signer from the distribution domain, key-pair id
// and PEM-encoded RSA private key. All three are required.
func NewCDNSigner(domain, keyPairID, privateKeyPEM string) (*CDNSigner, error) {
	if domain == "" {
		return nil, missingConfig("UPLOAD_DISTRIBUTION_DOMAIN")
	}
	if keyPairID == "" {
		return nil, missingConfig("UPLOAD_DISTRIBUTION_KEY_ID")
	}
	if privateKeyPEM == "" {
		return nil, missingConfig("UPLOAD_DISTRIBUTION_KEY_CONTENTS")
	}

	key, err := parseRSAPrivateKey(normalizePEM(privateKeyPEM))
	if err != nil {
		return nil, fmt.Errorf("parse distribution private key: %w", err)
	}

	if !strings.Contains(domain, "://") {
		domain = "https://" + domain
	}

	return &CDNSigner{
		domain: strings.TrimSuffix(domain, "/"),
		signer: sign.NewURLSigner(keyPairID, key),
	}, nil
}

// SignGet returns a signed URL for reading key through the distribution,
// valid until expires.
func (c *CDNSigner) SignGet(key string, expires time.Time) (string, error) {
	return c.signer.Sign(c.domain+"/"+key, expires)
}

func parseRSAPrivateKey(pemData string) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(pemData))
	if block == nil {
		return nil, errors.New("no PEM block found")
	}

	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("private key is not RSA")
	}
	return key, nil
}
