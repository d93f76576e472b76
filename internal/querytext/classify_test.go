package querytext

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCollectionName(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		want   string
		wantOK bool
	}{
		{"basic select", "SELECT * FROM cars", "cars", true},
		{"collection keyword", "SELECT * FROM COLLECTION cars", "cars", true},
		{"delete with collection keyword", "DELETE FROM COLLECTION users WHERE age > 30", "users", true},
		{"mixed case keeps identifier case", "select * from MyCollection where id = 1", "MyCollection", true},
		{"lowercase collection keyword", "select * from collection Orders", "Orders", true},
		{"evict", "EVICT FROM tasks WHERE done = true", "tasks", true},
		{"newlines between tokens", "SELECT *\nFROM\n\tinventory_2024", "inventory_2024", true},
		{"unicode identifier", "SELECT * FROM cafés", "cafés", true},
		{"first FROM wins", "SELECT * FROM a WHERE x IN (SELECT y FROM b)", "a", true},
		{"no from", "SHOW TABLES", "", false},
		{"update without from", "UPDATE COLLECTION products SET price = 10", "", false},
		{"from without identifier", "SELECT * FROM ", "", false},
		{"empty", "", "", false},
		{"whitespace", "   \n\t  ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractCollectionName(tt.query)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractCollectionName_KeywordCaseInsensitiveIdentifierVerbatim(t *testing.T) {
	for _, from := range []string{"FROM", "from", "From", "fRoM"} {
		for _, coll := range []string{"COLLECTION ", "collection ", "Collection ", ""} {
			got, ok := ExtractCollectionName("SELECT * " + from + " " + coll + "CarsAndTrucks")
			assert.True(t, ok)
			assert.Equal(t, "CarsAndTrucks", got)
		}
	}
}

func TestHasPagination(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"SELECT * FROM cars LIMIT 10", true},
		{"SELECT * FROM cars OFFSET 50", true},
		{"select * from cars limit 10 offset 20", true},
		{"SELECT * FROM cars", false},
		{"SELECT COUNT(*) FROM cars", false},
		// Plain substring: no token boundary.
		{"SELECT unlimited FROM plans", true},
		{"", false},
		{"   \n\t  ", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, HasPagination(tt.query))
		})
	}
}

func TestIsAggregateOrPaginatedQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{"count star", "SELECT COUNT(*) FROM cars", true},
		{"count field", "SELECT COUNT(id) FROM users", true},
		{"avg", "SELECT AVG(price) FROM products", true},
		{"sum", "SELECT SUM(quantity) FROM orders", true},
		{"min", "SELECT MIN(age) FROM users", true},
		{"max", "SELECT MAX(salary) FROM employees", true},
		{"lowercase aggregate", "select count(*) from cars", true},
		{"group by", "SELECT make, COUNT(*) FROM cars GROUP BY make", true},
		{"group by alone", "SELECT make FROM cars group by make", true},
		{"distinct", "SELECT DISTINCT category FROM products", true},
		{"distinct anywhere", "SELECT COUNT(DISTINCT make) FROM cars", true},
		{"limit", "SELECT * FROM cars LIMIT 10", true},
		{"offset", "SELECT * FROM cars OFFSET 50", true},
		{"limit and offset", "SELECT * FROM cars LIMIT 10 OFFSET 20", true},
		{"simple select", "SELECT make FROM cars", false},
		{"where clause", "SELECT * FROM cars WHERE year > 2020", false},
		{"counter is not count(", "SELECT counter FROM stats", false},
		{"maxSpeed is not max(", "SELECT maxSpeed, minimum, summary FROM cars", false},
		{"aggregate with space before paren", "SELECT COUNT (*) FROM cars", false},
		{"limit inside string literal", "SELECT description FROM rules WHERE text LIKE '%LIMIT%'", true},
		{"empty", "", false},
		{"whitespace", "   \n\t  ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAggregateOrPaginatedQuery(tt.query))
		})
	}
}

func TestInspect(t *testing.T) {
	shape := Inspect("SELECT make, COUNT(*) FROM COLLECTION Cars GROUP BY make LIMIT 5")
	assert.Equal(t, Shape{
		Collection:           "Cars",
		HasCollection:        true,
		AggregateOrPaginated: true,
		Paginated:            true,
	}, shape)

	assert.Equal(t, Shape{}, Inspect(""))
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		limit   int
		offset  int
		want    string
		changed bool
	}{
		{"adds limit", "SELECT * FROM cars", 100, 0, "SELECT * FROM cars LIMIT 100", true},
		{"adds limit and offset", "SELECT * FROM cars", 100, 200, "SELECT * FROM cars LIMIT 100 OFFSET 200", true},
		{"trims trailing semicolon", "SELECT * FROM cars;  \n", 10, 0, "SELECT * FROM cars LIMIT 10", true},
		{"already limited", "SELECT * FROM cars LIMIT 5", 100, 0, "SELECT * FROM cars LIMIT 5", false},
		{"aggregate", "SELECT COUNT(*) FROM cars", 100, 0, "SELECT COUNT(*) FROM cars", false},
		{"zero limit", "SELECT * FROM cars", 0, 10, "SELECT * FROM cars", false},
		{"blank", "   ", 10, 0, "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := Paginate(tt.query, tt.limit, tt.offset)
			assert.Equal(t, tt.changed, changed)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPaginate_ResultIsPaginated(t *testing.T) {
	got, changed := Paginate("SELECT * FROM logs", 50, 0)
	assert.True(t, changed)
	assert.True(t, HasPagination(got))
	assert.True(t, IsAggregateOrPaginatedQuery(got))

	again, changed := Paginate(got, 50, 0)
	assert.False(t, changed)
	assert.Equal(t, got, again)
}

func TestClassifiersConcurrent(t *testing.T) {
	queries := []string{
		"SELECT COUNT(*) FROM cars",
		"SELECT * FROM COLLECTION users",
		"SELECT * FROM cars LIMIT 1",
		"",
	}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(q string) {
			defer wg.Done()
			Inspect(q)
			Paginate(q, 10, 0)
		}(queries[i%len(queries)])
	}
	wg.Wait()
}
