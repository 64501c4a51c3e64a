package quic

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/tls"
	"crypto/x509"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateServerTLS(t *testing.T) {
	cfg, err := GenerateServerTLS([]string{"streamio"}, "localhost", "127.0.0.1")
	require.NoError(t, err)

	assert.Equal(t, []string{"streamio"}, cfg.NextProtos)
	assert.Equal(t, uint16(tls.VersionTLS13), cfg.MinVersion)
	require.Len(t, cfg.Certificates, 1)

	key, ok := cfg.Certificates[0].PrivateKey.(*ecdsa.PrivateKey)
	require.True(t, ok)
	assert.Equal(t, elliptic.P256(), key.Curve)

	cert, err := x509.ParseCertificate(cfg.Certificates[0].Certificate[0])
	require.NoError(t, err)
	assert.Equal(t, []string{"localhost"}, cert.DNSNames)
	require.Len(t, cert.IPAddresses, 1)
	assert.True(t, cert.IPAddresses[0].Equal(net.ParseIP("127.0.0.1")))
	assert.NoError(t, cert.VerifyHostname("localhost"))
	assert.True(t, cert.NotAfter.After(cert.NotBefore))
}

func TestGenerateServerTLS_DefaultHost(t *testing.T) {
	cfg, err := GenerateServerTLS(nil)
	require.NoError(t, err)

	cert, err := x509.ParseCertificate(cfg.Certificates[0].Certificate[0])
	require.NoError(t, err)
	assert.Equal(t, []string{"localhost"}, cert.DNSNames)
}

func TestGenerateServerTLS_UniqueSerials(t *testing.T) {
	a, err := GenerateServerTLS(nil)
	require.NoError(t, err)
	b, err := GenerateServerTLS(nil)
	require.NoError(t, err)

	ca, err := x509.ParseCertificate(a.Certificates[0].Certificate[0])
	require.NoError(t, err)
	cb, err := x509.ParseCertificate(b.Certificates[0].Certificate[0])
	require.NoError(t, err)
	assert.NotEqual(t, ca.SerialNumber, cb.SerialNumber)
}

func TestClientTLS(t *testing.T) {
	cfg := clientTLS([]string{"a", "b"}, true)
	assert.Equal(t, []string{"a", "b"}, cfg.NextProtos)
	assert.True(t, cfg.InsecureSkipVerify)
	assert.False(t, clientTLS(nil, false).InsecureSkipVerify)
}
