package protocol

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	data, err := Encode(CmdBuild, &BuildRequest{ConfigPath: "config.chariot", Forced: []string{"target/libc"}})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	env, payload, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if env.Command != CmdBuild {
		t.Fatalf("command = %q, want %q", env.Command, CmdBuild)
	}

	req, err := DecodePayload[BuildRequest](payload)
	if err != nil {
		t.Fatalf("DecodePayload: %v", err)
	}
	if req.ConfigPath != "config.chariot" {
		t.Fatalf("ConfigPath = %q, want config.chariot", req.ConfigPath)
	}
	if len(req.Forced) != 1 || req.Forced[0] != "target/libc" {
		t.Fatalf("Forced = %v, want [target/libc]", req.Forced)
	}
}

func TestDecodeMalformedEnvelope(t *testing.T) {
	if _, _, err := Decode([]byte("not json")); err == nil {
		t.Fatal("expected decode error for malformed input")
	}
}

func TestDecodeStatusPayloadRoundTrip(t *testing.T) {
	data, err := Encode(CmdStatus, &StatusResult{Running: true, Builds: 3})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	_, payload, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	result, err := DecodePayload[StatusResult](payload)
	if err != nil {
		t.Fatalf("DecodePayload: %v", err)
	}
	if !result.Running || result.Builds != 3 {
		t.Fatalf("unexpected result: %+v", result)
	}
}
