package mangle

import "testing"

func TestNewEngine(t *testing.T) {
	cfg := DefaultConfig()
	engine, err := NewEngine(cfg)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	if engine == nil {
		t.Fatal("NewEngine() returned nil engine")
	}
}

func TestEngineLoadSchemaString(t *testing.T) {
	cfg := DefaultConfig()
	engine, err := NewEngine(cfg)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	schema := `Decl test_fact(X, Y).`
	if err := engine.LoadSchemaString(schema); err != nil {
		t.Fatalf("LoadSchemaString() error = %v", err)
	}
}

func TestEngineAddFact(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AutoEval = false // manual eval for testing
	engine, err := NewEngine(cfg)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	schema := `Decl test_fact(X, Y).`
	if err := engine.LoadSchemaString(schema); err != nil {
		t.Fatalf("LoadSchemaString() error = %v", err)
	}

	if err := engine.AddFact("test_fact", "hello", int64(42)); err != nil {
		t.Fatalf("AddFact() error = %v", err)
	}
}

func TestEngineAddFacts(t *testing.T) {
	cfg := DefaultConfig()
	engine, err := NewEngine(cfg)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	schema := `Decl person(Name, Age).`
	if err := engine.LoadSchemaString(schema); err != nil {
		t.Fatalf("LoadSchemaString() error = %v", err)
	}

	facts := []Fact{
		{Predicate: "person", Args: []interface{}{"Alice", int64(30)}},
		{Predicate: "person", Args: []interface{}{"Bob", int64(25)}},
	}
	if err := engine.AddFacts(facts); err != nil {
		t.Fatalf("AddFacts() error = %v", err)
	}
}

func TestEngineAddFactBeforeSchemaFails(t *testing.T) {
	cfg := DefaultConfig()
	engine, err := NewEngine(cfg)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	if err := engine.AddFact("nope", "x"); err == nil {
		t.Fatal("AddFact() before any LoadSchemaString call = nil error, want one")
	}
}

func TestEngineGetFacts(t *testing.T) {
	cfg := DefaultConfig()
	engine, err := NewEngine(cfg)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	schema := `Decl item(Name).`
	if err := engine.LoadSchemaString(schema); err != nil {
		t.Fatalf("LoadSchemaString() error = %v", err)
	}

	_ = engine.AddFact("item", "apple")
	_ = engine.AddFact("item", "banana")

	facts, err := engine.GetFacts("item")
	if err != nil {
		t.Fatalf("GetFacts() error = %v", err)
	}
	if len(facts) != 2 {
		t.Errorf("GetFacts() returned %d facts, want 2", len(facts))
	}
}

func TestEngineGetFactsUndeclaredPredicate(t *testing.T) {
	cfg := DefaultConfig()
	engine, err := NewEngine(cfg)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	if _, err := engine.GetFacts("never_declared"); err == nil {
		t.Fatal("GetFacts() on an undeclared predicate = nil error, want one")
	}
}

func TestEngineFactLimitExceeded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FactLimit = 1
	engine, err := NewEngine(cfg)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	schema := `Decl item(Name).`
	if err := engine.LoadSchemaString(schema); err != nil {
		t.Fatalf("LoadSchemaString() error = %v", err)
	}

	if err := engine.AddFact("item", "apple"); err != nil {
		t.Fatalf("AddFact() first insert error = %v", err)
	}
	if err := engine.AddFact("item", "banana"); err == nil {
		t.Fatal("AddFact() past FactLimit = nil error, want one")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.FactLimit != 100000 {
		t.Errorf("FactLimit = %d, want 100000", cfg.FactLimit)
	}
	if !cfg.AutoEval {
		t.Error("AutoEval should be true by default")
	}
}

func TestEngineClose(t *testing.T) {
	cfg := DefaultConfig()
	engine, err := NewEngine(cfg)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	if err := engine.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}
