package pokergenerator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/astroforgit/pokergenerator/xor"
)

// ErrNoDB is returned by operations that need an asset database.
var ErrNoDB = errors.New("no asset database")

func (e *Editor) findImages(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() || !strings.EqualFold(filepath.Ext(file), ".atr") {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

// catalog records every picture on the image in file.
func (e *Editor) catalog(file string) error {
	s, err := e.Open(file)
	if err != nil {
		return err
	}

	pics, err := s.Pictures()
	if err != nil {
		return err
	}

	for _, p := range pics {
		f, err := s.disk.ReadFile(p)
		if err != nil {
			return err
		}

		seed, source, err := s.Seed(f, nil)
		if err != nil {
			return err
		}

		if err := e.db.AddAsset(Asset{
			Image:  file,
			Name:   f.Filename(),
			SHA1:   digest(f.Data),
			Size:   f.Size(),
			Seed:   seed,
			Source: source,
			Score:  xor.Score(f.Data, seed),
		}); err != nil {
			return err
		}
	}

	if len(pics) == 0 {
		e.logger.Printf("No pictures in \"%s\"\n", file)
	}
	return nil
}

func (e *Editor) imageWorker(ctx context.Context, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			if err := e.catalog(file); err != nil {
				errc <- err
				return
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(cancel context.CancelFunc, errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			cancel()
			// Let the remaining stages finish so no goroutine is left
			// blocked on a send
			for range errc {
			}
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan catalogs the pictures on every ATR image below path. Images are
// processed concurrently, each by its own session.
func (e *Editor) Scan(path string) error {
	if e.db == nil {
		return ErrNoDB
	}

	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := e.findImages(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < 10; i++ {
		errc, err := e.imageWorker(ctx, files)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(cancelFunc, errcList...)
}
