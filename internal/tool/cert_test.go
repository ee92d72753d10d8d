package tool

import (
	"crypto/tls"
	"crypto/x509"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureTlsCertificate(t *testing.T) {
	dir := t.TempDir()
	keyFilename := filepath.Join(dir, "key.pem")
	certFilename := filepath.Join(dir, "cert.pem")
	request := CertificateRequest{
		Organization: "jypelle",
		CommonName:   "Vekimeteo Server",
		Hostnames:    []string{"localhost", "127.0.0.1"},
	}

	generated, err := EnsureTlsCertificate(request, keyFilename, certFilename)
	require.NoError(t, err)
	assert.True(t, generated)

	pair, err := tls.LoadX509KeyPair(certFilename, keyFilename)
	require.NoError(t, err)
	cert, err := x509.ParseCertificate(pair.Certificate[0])
	require.NoError(t, err)
	assert.Equal(t, "Vekimeteo Server", cert.Subject.CommonName)
	assert.Equal(t, []string{"localhost"}, cert.DNSNames)
	require.Len(t, cert.IPAddresses, 1)
	assert.Equal(t, "127.0.0.1", cert.IPAddresses[0].String())

	generated, err = EnsureTlsCertificate(request, keyFilename, certFilename)
	require.NoError(t, err)
	assert.False(t, generated)
}

func TestIsFileExists(t *testing.T) {
	exists, err := IsFileExists(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = IsFileExists(t.TempDir())
	require.NoError(t, err)
	assert.True(t, exists)
}
