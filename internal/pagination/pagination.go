package pagination

import "github.com/AlexandrePereon/ELECTIVE-WEB-RESTAURANT/internal/domain"

// PageSize is fixed for every listing endpoint.
const PageSize = 5

// Paginate computes the window for a 1-indexed page over count documents.
// An empty collection is not an error: the caller gets an empty first page
// and decides whether that means "not found" for its endpoint.
func Paginate(count int64, page int) (skip int64, maxPage int, err error) {
	if page < 1 {
		return 0, 0, domain.ErrInvalidPage
	}

	if count == 0 {
		return 0, 0, nil
	}

	maxPage = int((count + PageSize - 1) / PageSize)
	if page > maxPage {
		return 0, maxPage, domain.ErrPageOutOfRange
	}

	return int64(page-1) * PageSize, maxPage, nil
}
