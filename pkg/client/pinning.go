package client

import (
	"crypto/sha256"
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"fmt"
)

// PinConfig pins the server identity during the TLS handshake.
//
// The trust decision stays below the dispatch pipeline: a connection to a
// server not matching the pins fails during the handshake and the pipeline
// never runs. RootCAs pins the accepted certificate authorities, SPKIPins
// pins SHA-256 fingerprints of subject public keys anywhere in the
// presented chain. Both can be combined.
type PinConfig struct {
	// RootCAs replaces the system roots for chain verification.
	RootCAs *x509.CertPool
	// SPKIPins are base64 encoded SHA-256 digests of pinned
	// SubjectPublicKeyInfo structures, see SPKIPin.
	SPKIPins []string
}

// SPKIPin computes the pin of a certificate public key.
func SPKIPin(cert *x509.Certificate) string {
	sum := sha256.Sum256(cert.RawSubjectPublicKeyInfo)
	return base64.StdEncoding.EncodeToString(sum[:])
}

// TLSConfig builds a tls.Config enforcing the pins.
func (p PinConfig) TLSConfig() *tls.Config {
	cfg := &tls.Config{MinVersion: tls.VersionTLS12}
	if p.RootCAs != nil {
		cfg.RootCAs = p.RootCAs
	}
	if len(p.SPKIPins) > 0 {
		pins := make(map[string]struct{}, len(p.SPKIPins))
		for _, pin := range p.SPKIPins {
			pins[pin] = struct{}{}
		}
		cfg.VerifyPeerCertificate = func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
			for _, raw := range rawCerts {
				cert, err := x509.ParseCertificate(raw)
				if err != nil {
					continue
				}
				if _, ok := pins[SPKIPin(cert)]; ok {
					return nil
				}
			}
			return fmt.Errorf("tls: no pinned public key found in the server chain")
		}
	}
	return cfg
}
