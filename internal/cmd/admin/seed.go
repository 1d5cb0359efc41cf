package admin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/louisbranch/bengkel/internal/platform/id"
	"github.com/louisbranch/bengkel/internal/services/web/storage"
)

// SeedFile is the YAML document accepted by `admin seed`.
type SeedFile struct {
	Suppliers []SeedSupplier `yaml:"suppliers"`
	Mechanics []SeedMechanic `yaml:"mechanics"`
	Services  []SeedService  `yaml:"services"`
	Parts     []SeedPart     `yaml:"parts"`
}

// SeedSupplier is one supplier entry, matched by name.
type SeedSupplier struct {
	Name    string `yaml:"name"`
	Phone   string `yaml:"phone"`
	Address string `yaml:"address"`
}

// SeedMechanic is one mechanic entry, matched by name. Active defaults to true.
type SeedMechanic struct {
	Name   string `yaml:"name"`
	Phone  string `yaml:"phone"`
	Active *bool  `yaml:"active"`
}

// SeedService is one service entry, matched by name.
type SeedService struct {
	Name  string `yaml:"name"`
	Price int64  `yaml:"price"`
}

// SeedPart is one part entry, matched by SKU. Supplier names a supplier.
type SeedPart struct {
	SKU      string `yaml:"sku"`
	Name     string `yaml:"name"`
	Price    int64  `yaml:"price"`
	Stock    int    `yaml:"stock"`
	Supplier string `yaml:"supplier"`
}

// SeedResult counts what a seed run wrote.
type SeedResult struct {
	Created int
	Updated int
}

// LoadSeed decodes a seed document, rejecting unknown keys.
func LoadSeed(r io.Reader) (SeedFile, error) {
	var file SeedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return SeedFile{}, nil
		}
		return SeedFile{}, fmt.Errorf("decode seed file: %w", err)
	}
	return file, nil
}

type seedStore interface {
	storage.SupplierStore
	storage.MechanicStore
	storage.ServiceStore
	storage.PartStore
}

// ApplySeed upserts every entry in file. Re-running the same file updates
// the records it created before instead of duplicating them.
func ApplySeed(ctx context.Context, store seedStore, file SeedFile, newID func() (string, error)) (SeedResult, error) {
	if newID == nil {
		newID = id.NewID
	}
	var result SeedResult
	pick := func(existing string) (string, error) {
		if existing != "" {
			result.Updated++
			return existing, nil
		}
		result.Created++
		return newID()
	}

	suppliers, err := store.ListSuppliers(ctx)
	if err != nil {
		return result, fmt.Errorf("list suppliers: %w", err)
	}
	supplierIDs := make(map[string]string, len(suppliers))
	for _, s := range suppliers {
		supplierIDs[nameKey(s.Name)] = s.ID
	}
	for _, entry := range file.Suppliers {
		recordID, err := pick(supplierIDs[nameKey(entry.Name)])
		if err != nil {
			return result, err
		}
		if err := store.PutSupplier(ctx, storage.Supplier{
			ID:      recordID,
			Name:    entry.Name,
			Phone:   entry.Phone,
			Address: entry.Address,
		}); err != nil {
			return result, fmt.Errorf("seed supplier %q: %w", entry.Name, err)
		}
		supplierIDs[nameKey(entry.Name)] = recordID
	}

	mechanics, err := store.ListMechanics(ctx)
	if err != nil {
		return result, fmt.Errorf("list mechanics: %w", err)
	}
	mechanicIDs := make(map[string]string, len(mechanics))
	for _, m := range mechanics {
		mechanicIDs[nameKey(m.Name)] = m.ID
	}
	for _, entry := range file.Mechanics {
		recordID, err := pick(mechanicIDs[nameKey(entry.Name)])
		if err != nil {
			return result, err
		}
		active := entry.Active == nil || *entry.Active
		if err := store.PutMechanic(ctx, storage.Mechanic{
			ID:     recordID,
			Name:   entry.Name,
			Phone:  entry.Phone,
			Active: active,
		}); err != nil {
			return result, fmt.Errorf("seed mechanic %q: %w", entry.Name, err)
		}
		mechanicIDs[nameKey(entry.Name)] = recordID
	}

	services, err := store.ListServices(ctx)
	if err != nil {
		return result, fmt.Errorf("list services: %w", err)
	}
	serviceIDs := make(map[string]string, len(services))
	for _, s := range services {
		serviceIDs[nameKey(s.Name)] = s.ID
	}
	for _, entry := range file.Services {
		recordID, err := pick(serviceIDs[nameKey(entry.Name)])
		if err != nil {
			return result, err
		}
		if err := store.PutService(ctx, storage.Service{ID: recordID, Name: entry.Name, Price: entry.Price}); err != nil {
			return result, fmt.Errorf("seed service %q: %w", entry.Name, err)
		}
		serviceIDs[nameKey(entry.Name)] = recordID
	}

	parts, err := store.ListParts(ctx)
	if err != nil {
		return result, fmt.Errorf("list parts: %w", err)
	}
	partIDs := make(map[string]string, len(parts))
	for _, p := range parts {
		partIDs[nameKey(p.SKU)] = p.ID
	}
	for _, entry := range file.Parts {
		supplierID := ""
		if strings.TrimSpace(entry.Supplier) != "" {
			var ok bool
			supplierID, ok = supplierIDs[nameKey(entry.Supplier)]
			if !ok {
				return result, fmt.Errorf("seed part %q: unknown supplier %q", entry.SKU, entry.Supplier)
			}
		}
		recordID, err := pick(partIDs[nameKey(entry.SKU)])
		if err != nil {
			return result, err
		}
		if err := store.PutPart(ctx, storage.Part{
			ID:         recordID,
			SKU:        entry.SKU,
			Name:       entry.Name,
			UnitPrice:  entry.Price,
			Stock:      entry.Stock,
			SupplierID: supplierID,
		}); err != nil {
			return result, fmt.Errorf("seed part %q: %w", entry.SKU, err)
		}
		partIDs[nameKey(entry.SKU)] = recordID
	}
	return result, nil
}

func nameKey(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func newSeedCommand(root *rootOptions) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load suppliers, mechanics, services and parts from a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open seed file: %w", err)
			}
			defer f.Close()
			file, err := LoadSeed(f)
			if err != nil {
				return err
			}

			store, err := root.openStore()
			if err != nil {
				return err
			}
			defer closeStore(cmd, store)

			result, err := ApplySeed(cmd.Context(), store, file, nil)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d new and %d updated records\n", result.Created, result.Updated)
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "file", "f", "", "Seed YAML file (required)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
