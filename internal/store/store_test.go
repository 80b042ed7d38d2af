package store

import (
	"errors"
	"os"
	"testing"

	"github.com/komumoyu/Motion/internal/apperr"
	"github.com/komumoyu/Motion/internal/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	f, err := os.CreateTemp("", "motion-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func mustInsert(t *testing.T, db *DB, d *models.Document) *models.Document {
	t.Helper()
	if err := db.InsertDocument(d); err != nil {
		t.Fatalf("InsertDocument: %v", err)
	}
	return d
}

func TestSchemaCreation(t *testing.T) {
	db := testDB(t)
	for _, table := range []string{"documents", "properties", "property_values", "views", "embedded_databases"} {
		var count int
		if err := db.conn.QueryRow(`SELECT count(*) FROM ` + table).Scan(&count); err != nil {
			t.Fatalf("%s table missing: %v", table, err)
		}
	}
}

func TestInsertAssignsIDAndDefaults(t *testing.T) {
	db := testDB(t)
	d := mustInsert(t, db, &models.Document{Title: "Note", UserID: "u1"})
	if d.ID == "" {
		t.Fatal("expected generated id")
	}
	if d.Kind != models.KindPage {
		t.Errorf("kind = %q, want page", d.Kind)
	}

	got, err := db.GetDocument(d.ID)
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if got.Title != "Note" || got.UserID != "u1" {
		t.Errorf("got %+v", got)
	}
}

func TestGetDocumentNotFound(t *testing.T) {
	db := testDB(t)
	if _, err := db.GetDocument("missing"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateDocumentPartialPatch(t *testing.T) {
	db := testDB(t)
	d := mustInsert(t, db, &models.Document{Title: "Before", UserID: "u1", Content: "body"})

	title := "After"
	if err := db.UpdateDocument(d.ID, models.DocumentPatch{Title: &title}); err != nil {
		t.Fatalf("UpdateDocument: %v", err)
	}

	got, _ := db.GetDocument(d.ID)
	if got.Title != "After" {
		t.Errorf("title = %q, want After", got.Title)
	}
	if got.Content != "body" {
		t.Errorf("content changed unexpectedly: %q", got.Content)
	}
}

func TestArchiveTreeCascadesToDescendants(t *testing.T) {
	db := testDB(t)
	root := mustInsert(t, db, &models.Document{Title: "root", UserID: "u1"})
	child := mustInsert(t, db, &models.Document{Title: "child", UserID: "u1", ParentDocument: root.ID})
	grand := mustInsert(t, db, &models.Document{Title: "grand", UserID: "u1", ParentDocument: child.ID})
	// A child owned by someone else stays untouched.
	foreign := mustInsert(t, db, &models.Document{Title: "foreign", UserID: "u2", ParentDocument: root.ID})

	if err := db.ArchiveTree(root.ID, "u1"); err != nil {
		t.Fatalf("ArchiveTree: %v", err)
	}

	for _, id := range []string{root.ID, child.ID, grand.ID} {
		got, _ := db.GetDocument(id)
		if !got.IsArchived {
			t.Errorf("%s not archived", got.Title)
		}
	}
	got, _ := db.GetDocument(foreign.ID)
	if got.IsArchived {
		t.Error("foreign-owned child was archived")
	}
}

func TestRestoreTreeDetachesWhenParentArchived(t *testing.T) {
	db := testDB(t)
	parent := mustInsert(t, db, &models.Document{Title: "parent", UserID: "u1"})
	child := mustInsert(t, db, &models.Document{Title: "child", UserID: "u1", ParentDocument: parent.ID})

	if err := db.ArchiveTree(parent.ID, "u1"); err != nil {
		t.Fatalf("ArchiveTree: %v", err)
	}
	// Restore only the child while the parent stays archived.
	if err := db.RestoreTree(child.ID, "u1"); err != nil {
		t.Fatalf("RestoreTree: %v", err)
	}

	got, _ := db.GetDocument(child.ID)
	if got.IsArchived {
		t.Error("child still archived")
	}
	if got.ParentDocument != "" {
		t.Errorf("child still attached to archived parent %q", got.ParentDocument)
	}
	p, _ := db.GetDocument(parent.ID)
	if !p.IsArchived {
		t.Error("parent should stay archived")
	}
}

func TestRestoreTreeKeepsLiveParent(t *testing.T) {
	db := testDB(t)
	parent := mustInsert(t, db, &models.Document{Title: "parent", UserID: "u1"})
	child := mustInsert(t, db, &models.Document{Title: "child", UserID: "u1", ParentDocument: parent.ID})

	if err := db.ArchiveTree(child.ID, "u1"); err != nil {
		t.Fatalf("ArchiveTree: %v", err)
	}
	if err := db.RestoreTree(child.ID, "u1"); err != nil {
		t.Fatalf("RestoreTree: %v", err)
	}

	got, _ := db.GetDocument(child.ID)
	if got.ParentDocument != parent.ID {
		t.Errorf("parent link lost: %q", got.ParentDocument)
	}
}

func TestRestoreTreeRestoresDescendants(t *testing.T) {
	db := testDB(t)
	root := mustInsert(t, db, &models.Document{Title: "root", UserID: "u1"})
	child := mustInsert(t, db, &models.Document{Title: "child", UserID: "u1", ParentDocument: root.ID})

	if err := db.ArchiveTree(root.ID, "u1"); err != nil {
		t.Fatalf("ArchiveTree: %v", err)
	}
	if err := db.RestoreTree(root.ID, "u1"); err != nil {
		t.Fatalf("RestoreTree: %v", err)
	}

	got, _ := db.GetDocument(child.ID)
	if got.IsArchived {
		t.Error("descendant not restored with root")
	}
}

func TestInsertDatabaseBundle(t *testing.T) {
	db := testDB(t)
	d := &models.Document{Title: "Tasks", UserID: "u1", Kind: models.KindDatabase}
	titleProp := &models.Property{Name: "Title", Type: models.TypeText}
	view := &models.View{Name: "All", Type: models.ViewTable, IsDefault: true}
	if err := db.InsertDatabase(d, titleProp, view); err != nil {
		t.Fatalf("InsertDatabase: %v", err)
	}

	props, err := db.ListProperties(d.ID)
	if err != nil {
		t.Fatalf("ListProperties: %v", err)
	}
	if len(props) != 1 || props[0].Name != "Title" || props[0].Type != models.TypeText || props[0].Order != 0 {
		t.Fatalf("synthesized property = %+v", props)
	}

	views, err := db.ListViews(d.ID)
	if err != nil {
		t.Fatalf("ListViews: %v", err)
	}
	if len(views) != 1 || views[0].Type != models.ViewTable || !views[0].IsDefault {
		t.Fatalf("synthesized view = %+v", views)
	}
}

func TestDeleteDocumentCascades(t *testing.T) {
	db := testDB(t)
	d := &models.Document{Title: "DB", UserID: "u1", Kind: models.KindDatabase}
	if err := db.InsertDatabase(d,
		&models.Property{Name: "Title", Type: models.TypeText},
		&models.View{Name: "All", Type: models.ViewTable, IsDefault: true}); err != nil {
		t.Fatalf("InsertDatabase: %v", err)
	}
	row := mustInsert(t, db, &models.Document{Title: "row", UserID: "u1", ParentDocument: d.ID, DatabaseID: d.ID})
	props, _ := db.ListProperties(d.ID)
	if _, err := db.UpsertCellValue(row.ID, props[0].ID, models.StringValue("x")); err != nil {
		t.Fatalf("UpsertCellValue: %v", err)
	}
	page := mustInsert(t, db, &models.Document{Title: "page child", UserID: "u1", ParentDocument: d.ID})

	if err := db.DeleteDocument(d.ID); err != nil {
		t.Fatalf("DeleteDocument: %v", err)
	}

	if _, err := db.GetDocument(row.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Error("row should cascade with its database")
	}
	if props, _ := db.ListProperties(d.ID); len(props) != 0 {
		t.Error("properties survived delete")
	}
	if views, _ := db.ListViews(d.ID); len(views) != 0 {
		t.Error("views survived delete")
	}
	// Ordinary children are detached, not deleted.
	got, err := db.GetDocument(page.ID)
	if err != nil {
		t.Fatalf("page child deleted: %v", err)
	}
	if got.ParentDocument != "" {
		t.Errorf("page child still parented to %q", got.ParentDocument)
	}
}

func TestPropertyOrderAppends(t *testing.T) {
	db := testDB(t)
	d := mustInsert(t, db, &models.Document{Title: "DB", UserID: "u1", Kind: models.KindDatabase})

	for i, name := range []string{"A", "B", "C"} {
		p := &models.Property{DatabaseID: d.ID, Name: name, Type: models.TypeText}
		if err := db.InsertProperty(p); err != nil {
			t.Fatalf("InsertProperty: %v", err)
		}
		if p.Order != i {
			t.Errorf("%s order = %d, want %d", name, p.Order, i)
		}
	}

	props, _ := db.ListProperties(d.ID)
	if len(props) != 3 || props[0].Name != "A" || props[2].Name != "C" {
		t.Fatalf("props = %+v", props)
	}
}

func TestUpsertCellValueOverwrites(t *testing.T) {
	db := testDB(t)
	d := mustInsert(t, db, &models.Document{Title: "DB", UserID: "u1", Kind: models.KindDatabase})
	row := mustInsert(t, db, &models.Document{Title: "row", UserID: "u1", DatabaseID: d.ID})
	p := &models.Property{DatabaseID: d.ID, Name: "Status", Type: models.TypeText}
	if err := db.InsertProperty(p); err != nil {
		t.Fatalf("InsertProperty: %v", err)
	}

	id1, err := db.UpsertCellValue(row.ID, p.ID, models.StringValue("hello"))
	if err != nil {
		t.Fatalf("UpsertCellValue: %v", err)
	}
	id2, err := db.UpsertCellValue(row.ID, p.ID, models.StringValue("world"))
	if err != nil {
		t.Fatalf("UpsertCellValue: %v", err)
	}
	if id1 != id2 {
		t.Errorf("overwrite created a new record: %s vs %s", id1, id2)
	}

	values, _ := db.ListCellValues(row.ID)
	if len(values) != 1 {
		t.Fatalf("expected exactly one cell, got %d", len(values))
	}
	if s, _ := values[0].Value.AsString(); s != "world" {
		t.Errorf("value = %q, want world", s)
	}
}

func TestDeletePropertyRemovesValues(t *testing.T) {
	db := testDB(t)
	d := mustInsert(t, db, &models.Document{Title: "DB", UserID: "u1", Kind: models.KindDatabase})
	row := mustInsert(t, db, &models.Document{Title: "row", UserID: "u1", DatabaseID: d.ID})
	p := &models.Property{DatabaseID: d.ID, Name: "Status", Type: models.TypeText}
	if err := db.InsertProperty(p); err != nil {
		t.Fatalf("InsertProperty: %v", err)
	}
	if _, err := db.UpsertCellValue(row.ID, p.ID, models.StringValue("x")); err != nil {
		t.Fatalf("UpsertCellValue: %v", err)
	}

	if err := db.DeleteProperty(p.ID); err != nil {
		t.Fatalf("DeleteProperty: %v", err)
	}

	values, _ := db.ListCellValues(row.ID)
	for _, v := range values {
		if v.PropertyID == p.ID {
			t.Errorf("cell still references deleted property")
		}
	}
	if _, err := db.GetProperty(p.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("property still present: %v", err)
	}
}

func TestEmbedsOrderedByPosition(t *testing.T) {
	db := testDB(t)
	host := mustInsert(t, db, &models.Document{Title: "host", UserID: "u1"})
	positions := map[string]int{"A": 2, "B": 0, "C": 1}
	ids := make(map[string]string)
	for _, name := range []string{"A", "B", "C"} {
		d := mustInsert(t, db, &models.Document{Title: name, UserID: "u1", Kind: models.KindDatabase})
		ids[name] = d.ID
		if err := db.InsertEmbed(&models.EmbeddedDatabase{DocumentID: host.ID, DatabaseID: d.ID, Position: positions[name]}); err != nil {
			t.Fatalf("InsertEmbed: %v", err)
		}
	}

	embeds, err := db.ListEmbeds(host.ID)
	if err != nil {
		t.Fatalf("ListEmbeds: %v", err)
	}
	if len(embeds) != 3 {
		t.Fatalf("embeds = %d, want 3", len(embeds))
	}
	want := []string{ids["B"], ids["C"], ids["A"]}
	for i, e := range embeds {
		if e.DatabaseID != want[i] {
			t.Errorf("embeds[%d] = %s, want %s", i, e.DatabaseID, want[i])
		}
		if e.Database == nil || e.Database.ID != e.DatabaseID {
			t.Errorf("embeds[%d] missing database snapshot", i)
		}
	}
}

func TestFindEmbedPair(t *testing.T) {
	db := testDB(t)
	host := mustInsert(t, db, &models.Document{Title: "host", UserID: "u1"})
	target := mustInsert(t, db, &models.Document{Title: "DB", UserID: "u1", Kind: models.KindDatabase})

	e := &models.EmbeddedDatabase{DocumentID: host.ID, DatabaseID: target.ID}
	if err := db.InsertEmbed(e); err != nil {
		t.Fatalf("InsertEmbed: %v", err)
	}

	found, err := db.FindEmbed(host.ID, target.ID)
	if err != nil {
		t.Fatalf("FindEmbed: %v", err)
	}
	if found.ID != e.ID {
		t.Errorf("found = %s, want %s", found.ID, e.ID)
	}

	if _, err := db.FindEmbed(host.ID, "nope"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("absent pair err = %v, want ErrNotFound", err)
	}
}

func TestDeleteEmbedPairLeavesDatabase(t *testing.T) {
	db := testDB(t)
	host := mustInsert(t, db, &models.Document{Title: "host", UserID: "u1"})
	target := mustInsert(t, db, &models.Document{Title: "DB", UserID: "u1", Kind: models.KindDatabase})
	if err := db.InsertEmbed(&models.EmbeddedDatabase{DocumentID: host.ID, DatabaseID: target.ID}); err != nil {
		t.Fatalf("InsertEmbed: %v", err)
	}

	if err := db.DeleteEmbedPair(host.ID, target.ID); err != nil {
		t.Fatalf("DeleteEmbedPair: %v", err)
	}

	if embeds, _ := db.ListEmbeds(host.ID); len(embeds) != 0 {
		t.Error("embed survived delete")
	}
	if _, err := db.GetDocument(target.ID); err != nil {
		t.Errorf("target database was deleted: %v", err)
	}
}

func TestSearchScopedToOwnerAndActive(t *testing.T) {
	db := testDB(t)
	mustInsert(t, db, &models.Document{Title: "Release checklist", UserID: "u1", Content: "ship it"})
	other := mustInsert(t, db, &models.Document{Title: "Release notes", UserID: "u2"})
	_ = other
	archived := mustInsert(t, db, &models.Document{Title: "Release plan", UserID: "u1"})
	if err := db.ArchiveTree(archived.ID, "u1"); err != nil {
		t.Fatalf("ArchiveTree: %v", err)
	}

	hits, err := db.Search("u1", "Release", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("hits = %d, want 1 (%+v)", len(hits), hits)
	}
	if hits[0].Title != "Release checklist" {
		t.Errorf("hit = %+v", hits[0])
	}
}
