package content

import (
	"strings"
	"testing"
	"time"
)

const samplePost = `---
title: "Первый пост"
date: "2026-02-03"
category: "Йога"
excerpt: "Короткое описание"
---

Текст поста.
`

func TestNewPostSlug(t *testing.T) {
	now := time.Date(2026, 2, 3, 15, 30, 45, 0, time.UTC)
	if got := NewPostSlug(now); got != "post-20260203-153045" {
		t.Fatalf("NewPostSlug: %q", got)
	}
}

func TestWriteReadDeletePost(t *testing.T) {
	s, _ := newTestStore(t)

	if s.PostExists("post-x") {
		t.Fatal("post must not exist before write")
	}
	if err := s.WritePost("post-x", samplePost); err != nil {
		t.Fatalf("WritePost: %v", err)
	}
	if !s.PostExists("post-x") {
		t.Fatal("post must exist after write")
	}

	text, err := s.ReadPost("post-x")
	if err != nil {
		t.Fatalf("ReadPost: %v", err)
	}
	if text != samplePost {
		t.Fatalf("ReadPost content mismatch:\n%s", text)
	}
	if got := s.PostTitle("post-x"); got != "Первый пост" {
		t.Fatalf("PostTitle: %q", got)
	}

	if err := s.DeletePost("post-x"); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}
	if s.PostExists("post-x") {
		t.Fatal("post must be gone after delete")
	}
}

func TestListPostsOrder(t *testing.T) {
	s, _ := newTestStore(t)

	write := func(slug, title, date string) {
		t.Helper()
		text := "---\ntitle: \"" + title + "\"\n"
		if date != "" {
			text += "date: \"" + date + "\"\n"
		}
		text += "---\n\nТело.\n"
		if err := s.WritePost(slug, text); err != nil {
			t.Fatalf("WritePost(%s): %v", slug, err)
		}
	}

	write("post-old", "Старый", "2025-01-01")
	write("post-new", "Новый", "2026-02-03")
	write("post-undated", "Без даты", "")
	write("post-b", "Тот же день Б", "2026-01-10")
	write("post-a", "Тот же день А", "2026-01-10")

	posts, err := s.ListPosts()
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}

	var slugs []string
	for _, p := range posts {
		slugs = append(slugs, p.Slug)
	}
	want := []string{"post-new", "post-a", "post-b", "post-old", "post-undated"}
	if strings.Join(slugs, ",") != strings.Join(want, ",") {
		t.Fatalf("order: got %v, want %v", slugs, want)
	}
}

func TestListPostsMissingDir(t *testing.T) {
	s, _ := newTestStore(t)
	posts, err := s.ListPosts()
	if err != nil {
		t.Fatalf("ListPosts on missing dir: %v", err)
	}
	if len(posts) != 0 {
		t.Fatalf("expected no posts, got %v", posts)
	}
}

func TestParseFrontmatter(t *testing.T) {
	fields := parseFrontmatter(samplePost)
	if fields["title"] != "Первый пост" {
		t.Fatalf("title: %q", fields["title"])
	}
	if fields["date"] != "2026-02-03" {
		t.Fatalf("date: %q", fields["date"])
	}

	// Без шапки полей нет.
	if got := parseFrontmatter("просто текст"); len(got) != 0 {
		t.Fatalf("no frontmatter: %v", got)
	}
}

func TestSetPreviewImage(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.WritePost("post-x", samplePost); err != nil {
		t.Fatal(err)
	}
	if err := s.SetPreviewImage("post-x", "/notgallery/p.jpg"); err != nil {
		t.Fatalf("SetPreviewImage: %v", err)
	}

	text, _ := s.ReadPost("post-x")
	lines := strings.Split(text, "\n")
	// Поле добавляется первой строкой шапки.
	if lines[1] != `previewImage: "/notgallery/p.jpg"` {
		t.Fatalf("previewImage line: %q", lines[1])
	}
	if !strings.Contains(text, `title: "Первый пост"`) || !strings.Contains(text, "Текст поста.") {
		t.Fatal("header fields and body must survive")
	}

	// Повторный вызов ничего не меняет.
	if err := s.SetPreviewImage("post-x", "/notgallery/other.jpg"); err != nil {
		t.Fatal(err)
	}
	again, _ := s.ReadPost("post-x")
	if again != text {
		t.Fatal("existing previewImage must not be overwritten")
	}
}

func TestSetPreviewImageNoHeader(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.WritePost("post-raw", "Просто текст без шапки.\n"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetPreviewImage("post-raw", "/notgallery/p.jpg"); err != nil {
		t.Fatalf("SetPreviewImage: %v", err)
	}

	text, _ := s.ReadPost("post-raw")
	if !strings.HasPrefix(text, "---\npreviewImage: \"/notgallery/p.jpg\"\n---\n") {
		t.Fatalf("fresh header must be synthesized:\n%s", text)
	}
	if !strings.Contains(text, "Просто текст без шапки.") {
		t.Fatal("body must survive")
	}
}
