package gcp

import "testing"

func TestGetPublicURL(t *testing.T) {
	bs := &bucketService{sheetBucket: bucketConfig{name: "sheet-bucket"}}
	if got, want := bs.GetPublicURL(BucketCategorySheet, "/sheets/abc.pdf"), "https://storage.googleapis.com/sheet-bucket/sheets/abc.pdf"; got != want {
		t.Fatalf("GetPublicURL: want=%q got=%q", want, got)
	}
	bs.sheetBucket.cdnDomain = "cdn.example.com"
	if got, want := bs.GetPublicURL(BucketCategorySheet, "sheets/abc.pdf"), "https://cdn.example.com/sheets/abc.pdf"; got != want {
		t.Fatalf("GetPublicURL with CDN: want=%q got=%q", want, got)
	}
	if got := bs.GetPublicURL("avatar", "k"); got != "k" {
		t.Fatalf("unknown category should echo key, got %q", got)
	}
}

func TestContentTypeForKey(t *testing.T) {
	cases := map[string]string{
		"sheets/a.pdf": "application/pdf",
		"cells/b.SVG":  "image/svg+xml",
		"x.bin":        "",
	}
	for key, want := range cases {
		if got := contentTypeForKey(key); got != want {
			t.Fatalf("contentTypeForKey(%q): got=%q want=%q", key, got, want)
		}
	}
}
