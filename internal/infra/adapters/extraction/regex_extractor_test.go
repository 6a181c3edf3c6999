package extraction

import (
	"testing"
)

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

func TestExtractUPIHandle(t *testing.T) {
	got := NewRegexExtractor().Extract("send the fee to rahul.verma@ybl right away")
	if !contains(got, "rahul.verma@ybl") {
		t.Fatalf("got %v", got)
	}
}

func TestExtractPhoneAndURL(t *testing.T) {
	got := NewRegexExtractor().Extract("call 9876543210 or visit http://kyc-update.example/verify now")
	if !contains(got, "9876543210") {
		t.Fatalf("phone missing: %v", got)
	}
	if !contains(got, "http://kyc-update.example/verify") {
		t.Fatalf("url missing: %v", got)
	}
}

func TestExtractEmailDistinctFromUPI(t *testing.T) {
	got := NewRegexExtractor().Extract("email refunds@secure-bank.example or pay scammer@paytm")
	if !contains(got, "refunds@secure-bank.example") || !contains(got, "scammer@paytm") {
		t.Fatalf("got %v", got)
	}
}

func TestExtractAccountNumber(t *testing.T) {
	got := NewRegexExtractor().Extract("transfer to account 123456789012 ifsc SBIN0001234")
	if !contains(got, "123456789012") {
		t.Fatalf("got %v", got)
	}
}

func TestExtractDeduplicates(t *testing.T) {
	got := NewRegexExtractor().Extract("pay scammer@paytm, yes scammer@paytm, SCAMMER@PAYTM")
	count := 0
	for _, v := range got {
		if v == "scammer@paytm" {
			count++
		}
	}
	if count != 1 || len(got) != 1 {
		t.Fatalf("got %v", got)
	}
}

func TestExtractPrefixedPhoneNotDoubleCounted(t *testing.T) {
	got := NewRegexExtractor().Extract("whatsapp me at +919876543210")
	if len(got) != 1 {
		t.Fatalf("prefixed phone captured %d artifacts: %v", len(got), got)
	}
}

func TestExtractNothingFromSmallTalk(t *testing.T) {
	if got := NewRegexExtractor().Extract("see you at lunch tomorrow"); len(got) != 0 {
		t.Fatalf("got %v", got)
	}
	if got := NewRegexExtractor().Extract("   "); got != nil {
		t.Fatalf("got %v", got)
	}
}
