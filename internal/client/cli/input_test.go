package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestGetSimpleText(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("hello world\n"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	if err != nil || got != "hello world" {
		t.Fatalf("got %q, err=%v", got, err)
	}
	if out.String() != "Name?\n> " {
		t.Fatalf("unexpected prompt %q", out.String())
	}
}

func TestGetSimpleTextEOF(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("lastline"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	if err != nil || got != "lastline" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func stubPassword(t *testing.T, value string, err error) {
	t.Helper()
	oldRead, oldFd := readPassword, stdinFd
	t.Cleanup(func() { readPassword, stdinFd = oldRead, oldFd })
	stdinFd = func() int { return 0 }
	readPassword = func(int) ([]byte, error) { return []byte(value), err }
}

func TestGetSecret(t *testing.T) {
	stubPassword(t, "  s3cret \n", nil)
	var out bytes.Buffer
	got, err := GetSecret("Token", &out)
	if err != nil || got != "s3cret" {
		t.Fatalf("got %q, err=%v", got, err)
	}
	if out.String() != "Token: \n" {
		t.Fatalf("unexpected prompt %q", out.String())
	}
}

func TestGetSecret_Errors(t *testing.T) {
	stubPassword(t, "", errors.New("boom"))
	if _, err := GetSecret("Token", &bytes.Buffer{}); err == nil {
		t.Fatal("expected error")
	}

	stubPassword(t, "   ", nil)
	if _, err := GetSecret("Token", &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for empty value")
	}
}
