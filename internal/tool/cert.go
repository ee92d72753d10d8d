package tool

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"math/big"
	"net"
	"os"
	"time"
)

type CertificateRequest struct {
	Organization string
	CommonName   string
	Hostnames    []string
	Validity     time.Duration
}

// EnsureTlsCertificate creates a self-signed key pair unless both files
// already exist, and reports whether it did.
func EnsureTlsCertificate(request CertificateRequest, keyFilename, certFilename string) (bool, error) {
	existCert, err := IsFileExists(certFilename)
	if err != nil {
		return false, fmt.Errorf("unable to access %s: %w", certFilename, err)
	}
	existKey, err := IsFileExists(keyFilename)
	if err != nil {
		return false, fmt.Errorf("unable to access %s: %w", keyFilename, err)
	}
	if existCert && existKey {
		return false, nil
	}

	if err := GenerateTlsCertificate(request, keyFilename, certFilename); err != nil {
		return false, err
	}
	return true, nil
}

func GenerateTlsCertificate(request CertificateRequest, keyFilename, certFilename string) error {
	validity := request.Validity
	if validity <= 0 {
		validity = 10 * 365 * 24 * time.Hour
	}
	notBefore := time.Now()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return err
	}

	serialNumber, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return err
	}
	template := x509.Certificate{
		SerialNumber: serialNumber,
		Subject: pkix.Name{
			Organization: []string{request.Organization},
			CommonName:   request.CommonName,
		},
		NotBefore:             notBefore,
		NotAfter:              notBefore.Add(validity),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
	}
	for _, h := range request.Hostnames {
		if ip := net.ParseIP(h); ip != nil {
			template.IPAddresses = append(template.IPAddresses, ip)
		} else {
			template.DNSNames = append(template.DNSNames, h)
		}
	}

	derBytes, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	if err != nil {
		return err
	}

	rawKey, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		return err
	}
	if err := writePem(keyFilename, "EC PRIVATE KEY", rawKey, 0600); err != nil {
		return err
	}
	return writePem(certFilename, "CERTIFICATE", derBytes, 0644)
}

func writePem(filename string, blockType string, b []byte, perm os.FileMode) error {
	file, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if err := pem.Encode(file, &pem.Block{Type: blockType, Bytes: b}); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func IsFileExists(filename string) (bool, error) {
	_, err := os.Stat(filename)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
