// Package extract runs the event extraction pipeline: fetch, normalize,
// prompt, complete, parse, validate and format.
package extract

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"github.com/fwojciec/eventscout"
)

// Extractor turns a web page or an uploaded file into a validated record.
// Every failure is returned to the caller; nothing is retried.
type Extractor struct {
	Fetcher    eventscout.Fetcher
	Normalizer eventscout.Normalizer
	Files      eventscout.FileExtractor
	Completer  eventscout.Completer
	Formatter  eventscout.RecordFormatter
	Logger     *slog.Logger
}

// Result holds the outcome of a successful extraction.
type Result struct {
	// Record is the validated record.
	Record *eventscout.Record

	// Block is Record rendered for its category store file.
	Block string

	// Warnings lists soft-rule violations that did not fail validation.
	Warnings []string
}

// FromURL fetches url, normalizes the page and extracts a record from it.
func (e *Extractor) FromURL(ctx context.Context, url string, corpus *eventscout.Corpus) (*Result, error) {
	html, err := e.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, eventscout.Errorf(eventscout.EFETCH, "failed to fetch %s: %s", url, describe(err))
	}

	content, err := e.Normalizer.Normalize(html)
	if err != nil {
		return nil, err
	}
	e.logger().Debug("normalized page", "url", url, "html", len(html), "chars", utf8.RuneCountInString(content))

	return e.extract(ctx, content, url, corpus)
}

// FromFile extracts a record from an uploaded file.
func (e *Extractor) FromFile(ctx context.Context, name string, content []byte, corpus *eventscout.Corpus) (*Result, error) {
	text, err := e.Files.ExtractFile(ctx, name, content)
	if err != nil {
		return nil, err
	}
	e.logger().Debug("read file", "file", name, "bytes", len(content), "chars", utf8.RuneCountInString(text))

	return e.extract(ctx, text, "", corpus)
}

func (e *Extractor) extract(ctx context.Context, content, sourceURL string, corpus *eventscout.Corpus) (*Result, error) {
	if corpus == nil {
		corpus = &eventscout.Corpus{}
	}

	req := eventscout.BuildPrompt(content, sourceURL, corpus.Tags, corpus.IDs)

	text, err := e.Completer.Complete(ctx, req)
	if err != nil {
		if eventscout.ErrorCode(err) == eventscout.EINTERNAL {
			return nil, eventscout.Errorf(eventscout.ECOMPLETION, "completion failed: %s", describe(err))
		}
		return nil, err
	}

	data, err := eventscout.ParseCompletion(text)
	if err != nil {
		return nil, err
	}

	v := eventscout.Validate(data, corpus.IDs)
	for _, w := range v.Warnings {
		e.logger().Warn("validation warning", "warning", w)
	}
	if !v.Valid {
		return nil, v.Err()
	}

	rec, err := eventscout.DecodeRecord(data)
	if err != nil {
		return nil, err
	}

	return &Result{
		Record:   rec,
		Block:    e.Formatter.FormatRecord(rec),
		Warnings: v.Warnings,
	}, nil
}

func (e *Extractor) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}

// describe returns the message of an application error or the text of any
// other error.
func describe(err error) string {
	if eventscout.ErrorCode(err) == eventscout.EINTERNAL {
		return err.Error()
	}
	return eventscout.ErrorMessage(err)
}
