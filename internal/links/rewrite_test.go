package links

import (
	"testing"
)

func existsSet(paths ...string) ExistsFunc {
	set := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		set[p] = struct{}{}
	}
	return func(rel string) bool {
		_, ok := set[rel]
		return ok
	}
}

func TestRewrite_ImageAndLink(t *testing.T) {
	body := "Saw ![a photo](./img1.png) and read [notes](doc.pdf).\n"
	out, atts := Rewrite(body, ".", existsSet("img1.png", "doc.pdf"))
	want := "Saw ![a photo](attachments/img1.png) and read [notes](attachments/doc.pdf).\n"
	if out != want {
		t.Errorf("body = %q, want %q", out, want)
	}
	if len(atts) != 2 {
		t.Fatalf("attachments = %v", atts)
	}
	if atts[0].Source != "img1.png" || atts[0].Name != "img1.png" {
		t.Errorf("attachment[0] = %+v", atts[0])
	}
	if atts[1].Source != "doc.pdf" || atts[1].Name != "doc.pdf" {
		t.Errorf("attachment[1] = %+v", atts[1])
	}
}

func TestRewrite_ExternalTargetsUntouched(t *testing.T) {
	body := "[a](https://example.com/x.png) [b](http://example.com) " +
		"[c](mailto:me@example.com) [d](#section) [e](data:text/plain,hi) [f](/abs/path.png)"
	out, atts := Rewrite(body, ".", existsSet("x.png"))
	if out != body {
		t.Errorf("body changed: %q", out)
	}
	if len(atts) != 0 {
		t.Errorf("attachments = %v, want none", atts)
	}
}

func TestRewrite_MissingFileUntouched(t *testing.T) {
	body := "![gone](./missing.png)"
	out, atts := Rewrite(body, ".", existsSet())
	if out != body {
		t.Errorf("body changed: %q", out)
	}
	if len(atts) != 0 {
		t.Errorf("attachments = %v, want none", atts)
	}
}

func TestRewrite_AngleBracketsUnwrapped(t *testing.T) {
	body := "![x](<my file.png>)"
	out, atts := Rewrite(body, ".", existsSet("my file.png"))
	if out != "![x](attachments/my file.png)" {
		t.Errorf("body = %q", out)
	}
	if len(atts) != 1 || atts[0].Name != "my file.png" {
		t.Errorf("attachments = %v", atts)
	}
}

func TestRewrite_TitleTailPreserved(t *testing.T) {
	body := `[doc](./a.pdf "A title")`
	out, _ := Rewrite(body, ".", existsSet("a.pdf"))
	if out != `[doc](attachments/a.pdf "A title")` {
		t.Errorf("body = %q", out)
	}
}

func TestRewrite_ResolvesAgainstNoteDir(t *testing.T) {
	body := "![x](img.png)"
	out, atts := Rewrite(body, "sub", existsSet("sub/img.png"))
	if out != "![x](attachments/img.png)" {
		t.Errorf("body = %q", out)
	}
	if len(atts) != 1 || atts[0].Source != "sub/img.png" {
		t.Errorf("attachments = %v", atts)
	}
}

func TestRewrite_ParentEscapeUntouched(t *testing.T) {
	body := "![x](../outside.png)"
	out, atts := Rewrite(body, "", func(string) bool { return true })
	if out != body {
		t.Errorf("body changed: %q", out)
	}
	if len(atts) != 0 {
		t.Errorf("attachments = %v, want none", atts)
	}
}
