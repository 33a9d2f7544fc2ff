// Package qrcode provides QR code generation with base64 encoding support.
//
// It produces PNG output with medium error correction, either as raw bytes
// or as a data URI for direct HTML embedding. Used by the two-factor
// enrollment flow to render otpauth:// provisioning URIs.
//
//	png, err := qrcode.Generate(uri, 256)
//	dataURI, err := qrcode.GenerateBase64Image(uri, 256)
package qrcode
