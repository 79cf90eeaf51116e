package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/astroforgit/pokergenerator"
	"github.com/astroforgit/pokergenerator/col"
	"github.com/astroforgit/pokergenerator/mic"
	"github.com/astroforgit/pokergenerator/palette"
	"github.com/astroforgit/pokergenerator/xor"
	"github.com/urfave/cli/v2"
)

const defaultDB = "pokergen.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version",
		Usage: "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

// newEditor opens the asset database if one exists.
func newEditor(c *cli.Context) (*pokergenerator.Editor, func(), error) {
	file := c.String("db")
	if _, err := os.Stat(file); err != nil {
		return pokergenerator.New(nil, newLogger(c)), func() {}, nil
	}
	db, err := pokergenerator.NewAssetDB(file)
	if err != nil {
		return nil, nil, err
	}
	return pokergenerator.New(db, newLogger(c)), func() { db.Close() }, nil
}

func seedFlag(c *cli.Context) (*byte, error) {
	if !c.IsSet("seed") {
		return nil, nil
	}
	v, err := strconv.ParseUint(c.String("seed"), 16, 8)
	if err != nil {
		return nil, fmt.Errorf("invalid seed %q, must be hex", c.String("seed"))
	}
	seed := byte(v)
	return &seed, nil
}

// registers returns the colour registers and master palette selected by the
// --col and --palette flags. With neither the fixed mode 15 palette is used
// and master is nil.
func registers(c *cli.Context) (mic.Registers, *palette.Master, error) {
	var regs mic.Registers = mic.Identity
	var master *palette.Master

	if file := c.String("col"); file != "" {
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, nil, err
		}
		regs, master = col.Decode(b), palette.Default()
	}

	if file := c.String("palette"); file != "" {
		m, err := palette.LoadFile(file)
		if err != nil {
			return nil, nil, err
		}
		master = m
	}
	return regs, master, nil
}

// list prints the directory of s. A file whose sectors cannot be read is
// listed with the error in place of its size.
func list(w io.Writer, s *pokergenerator.Session) error {
	dir, err := s.Files()
	if err != nil {
		return err
	}

	for _, f := range dir {
		var pic string
		if f.IsPicture() {
			pic = "picture"
		}
		size := "?"
		if file, err := s.Disk().ReadFile(f); err != nil {
			pic = err.Error()
		} else {
			size = strconv.Itoa(file.Size())
		}
		fmt.Fprintf(w, "%2d  %-12s  %02X  start %3d  %3d sectors  %6s bytes  %s\n", f.Slot, f.Filename(), f.Flag, f.Start, f.Count, size, pic)
	}
	return nil
}

var (
	seedCliFlag = &cli.StringFlag{
		Name:  "seed",
		Usage: "cipher seed in hex, overrides known and detected seeds",
	}
	widthCliFlag = &cli.IntFlag{
		Name:  "width",
		Value: mic.DefaultWidth,
		Usage: "picture width in pixels",
	}
	colCliFlag = &cli.StringFlag{
		Name:  "col",
		Usage: "COL colour register table",
	}
	paletteCliFlag = &cli.StringFlag{
		Name:  "palette",
		Usage: "768 byte ACT master palette",
	}
)

func main() {
	app := cli.NewApp()

	app.Name = "pokergen"
	app.Usage = "Atari Strip Poker picture editor"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"POKERGEN_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to asset database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "ls",
			Usage:     "List the files on a disk image",
			ArgsUsage: "IMAGE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				e, done, err := newEditor(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer done()

				s, err := e.Open(c.Args().First())
				if err != nil {
					return cli.Exit(err, 1)
				}

				if err := list(os.Stdout, s); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "extract",
			Usage:     "Extract a file as stored on the disk image",
			ArgsUsage: "IMAGE NAME OUTPUT",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "decrypt",
					Usage: "remove the cipher",
				},
				seedCliFlag,
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 3 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				e, done, err := newEditor(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer done()

				s, err := e.Open(c.Args().Get(0))
				if err != nil {
					return cli.Exit(err, 1)
				}

				f, err := s.Disk().Open(c.Args().Get(1))
				if err != nil {
					return cli.Exit(err, 1)
				}

				data := f.Data
				if c.Bool("decrypt") {
					override, err := seedFlag(c)
					if err != nil {
						return cli.Exit(err, 1)
					}
					seed, _, err := s.Seed(f, override)
					if err != nil {
						return cli.Exit(err, 1)
					}
					data = xor.Transform(data, seed)
				}

				if err := os.WriteFile(c.Args().Get(2), data, 0o644); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "seed",
			Usage:     "Show the cipher seed of a file",
			ArgsUsage: "IMAGE NAME",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				e, done, err := newEditor(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer done()

				s, err := e.Open(c.Args().Get(0))
				if err != nil {
					return cli.Exit(err, 1)
				}

				f, err := s.Disk().Open(c.Args().Get(1))
				if err != nil {
					return cli.Exit(err, 1)
				}

				detected, score := xor.DetectSeed(f.Data)
				seed, source, err := s.Seed(f, nil)
				if err != nil {
					return cli.Exit(err, 1)
				}

				fmt.Printf("detected %02X (%d of %d solid bytes)\n", detected, score, xor.SampleSize)
				fmt.Printf("using    %02X (%s)\n", seed, source)

				return nil
			},
		},
		{
			Name:      "export",
			Usage:     "Render a picture as PNG",
			ArgsUsage: "IMAGE NAME OUTPUT",
			Flags:     []cli.Flag{seedCliFlag, widthCliFlag, colCliFlag, paletteCliFlag},
			Action: func(c *cli.Context) error {
				if c.NArg() < 3 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				e, done, err := newEditor(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer done()

				override, err := seedFlag(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				regs, master, err := registers(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				s, err := e.Open(c.Args().Get(0))
				if err != nil {
					return cli.Exit(err, 1)
				}

				p, err := s.OpenPicture(c.Args().Get(1), &pokergenerator.OpenOptions{
					Seed:  override,
					Width: c.Int("width"),
				})
				if err != nil {
					return cli.Exit(err, 1)
				}

				pal := palette.Mode15
				if master != nil {
					pal = master.Palette()
				}

				f, err := os.Create(c.Args().Get(2))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer f.Close()

				if err := pokergenerator.ExportPNG(f, p.Image(regs, pal)); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "import",
			Usage:     "Replace a picture with a PNG",
			ArgsUsage: "IMAGE NAME INPUT OUTPUT",
			Flags:     []cli.Flag{seedCliFlag, widthCliFlag, colCliFlag, paletteCliFlag},
			Action: func(c *cli.Context) error {
				if c.NArg() < 4 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				e, done, err := newEditor(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer done()

				override, err := seedFlag(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				regs, master, err := registers(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				s, err := e.Open(c.Args().Get(0))
				if err != nil {
					return cli.Exit(err, 1)
				}

				p, err := s.OpenPicture(c.Args().Get(1), &pokergenerator.OpenOptions{
					Seed:  override,
					Width: c.Int("width"),
				})
				if err != nil {
					return cli.Exit(err, 1)
				}

				in, err := os.Open(c.Args().Get(2))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer in.Close()

				m, err := pokergenerator.ImportImage(in, p.Bitmap.Width, p.Bitmap.Height)
				if err != nil {
					return cli.Exit(err, 1)
				}

				finder := mic.Nearest(palette.Mode15)
				if master != nil {
					finder = mic.Scanline(regs, master.Palette())
				}

				if err := s.Commit(p, m, finder); err != nil {
					return cli.Exit(err, 1)
				}

				if err := s.SaveFile(c.Args().Get(3)); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "convert",
			Usage:     "Convert a picture to MIC and COL files",
			ArgsUsage: "INPUT MIC COL",
			Flags: []cli.Flag{
				paletteCliFlag,
				widthCliFlag,
				&cli.IntFlag{
					Name:  "height",
					Value: 140,
					Usage: "picture height in pixels",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 3 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				master := palette.Default()
				if file := c.String("palette"); file != "" {
					var err error
					if master, err = palette.LoadFile(file); err != nil {
						return cli.Exit(err, 1)
					}
				}

				in, err := os.Open(c.Args().Get(0))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer in.Close()

				m, err := pokergenerator.ImportImage(in, c.Int("width"), c.Int("height"))
				if err != nil {
					return cli.Exit(err, 1)
				}

				regs := mic.Quantize(m, master.Palette())
				table := col.New(col.LayoutBAK)
				for y := 0; y < c.Int("height") && y < col.Lines; y++ {
					if err := table.SetScanline(y, regs); err != nil {
						return cli.Exit(err, 1)
					}
				}

				var b bytes.Buffer
				if err := mic.Encode(&b, m, &mic.EncodeOptions{Finder: mic.Scanline(regs, master.Palette())}); err != nil {
					return cli.Exit(err, 1)
				}
				if err := os.WriteFile(c.Args().Get(1), b.Bytes(), 0o644); err != nil {
					return cli.Exit(err, 1)
				}

				t, err := table.MarshalBinary()
				if err != nil {
					return cli.Exit(err, 1)
				}
				if err := os.WriteFile(c.Args().Get(2), t, 0o644); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "seeds",
			Usage:     "Import known seeds from XML",
			ArgsUsage: "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				db, err := pokergenerator.NewAssetDB(c.String("db"))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer db.Close()

				if err := db.ImportXML(c.Args().First()); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "scan",
			Usage:     "Catalog the pictures on every disk image in a directory",
			ArgsUsage: "DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				db, err := pokergenerator.NewAssetDB(c.String("db"))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer db.Close()

				if err := pokergenerator.New(db, newLogger(c)).Scan(c.Args().First()); err != nil {
					return cli.Exit(err, 1)
				}

				assets, err := db.Assets()
				if err != nil {
					return cli.Exit(err, 1)
				}
				for _, a := range assets {
					fmt.Printf("%s  %-12s  %6d bytes  seed %02X %-8s  score %3d  %s\n", a.Image, a.Name, a.Size, a.Seed, a.Source, a.Score, a.SHA1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
