package biz

import (
	"context"
	"sort"
)

// in-memory fakes backing the use case tests

type fakeContentRepo struct {
	contents map[int64]*Content
	nextID   int64
	failing  bool
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{contents: make(map[int64]*Content), nextID: 1}
}

func (r *fakeContentRepo) Create(ctx context.Context, content *Content) error {
	if r.failing {
		return errStorage
	}
	content.ID = r.nextID
	r.nextID++
	cp := *content
	r.contents[cp.ID] = &cp
	return nil
}

func (r *fakeContentRepo) GetByID(ctx context.Context, id int64) (*Content, error) {
	c, ok := r.contents[id]
	if !ok {
		return nil, ErrContentNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeContentRepo) Update(ctx context.Context, content *Content) error {
	if _, ok := r.contents[content.ID]; !ok {
		return ErrContentNotFound
	}
	cp := *content
	r.contents[cp.ID] = &cp
	return nil
}

func (r *fakeContentRepo) IncrementRefCount(ctx context.Context, id int64) error {
	c, ok := r.contents[id]
	if !ok {
		return ErrContentNotFound
	}
	c.RefCount++
	return nil
}

func (r *fakeContentRepo) DecrementRefCount(ctx context.Context, id int64) (int64, error) {
	c, ok := r.contents[id]
	if !ok {
		return 0, ErrContentNotFound
	}
	c.RefCount--
	return c.RefCount, nil
}

func (r *fakeContentRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.contents[id]; !ok {
		return ErrContentNotFound
	}
	delete(r.contents, id)
	return nil
}

type fakeFileRepo struct {
	files  map[int64]*UserFile
	nextID int64
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{files: make(map[int64]*UserFile), nextID: 1}
}

func (r *fakeFileRepo) Create(ctx context.Context, file *UserFile) error {
	file.ID = r.nextID
	r.nextID++
	cp := *file
	r.files[cp.ID] = &cp
	return nil
}

func (r *fakeFileRepo) Update(ctx context.Context, file *UserFile) error {
	existing, ok := r.files[file.ID]
	if !ok || existing.UserID != file.UserID {
		return ErrSavedNotFound
	}
	cp := *file
	r.files[cp.ID] = &cp
	return nil
}

func (r *fakeFileRepo) Delete(ctx context.Context, id int64, userID string) error {
	existing, ok := r.files[id]
	if !ok || existing.UserID != userID {
		return ErrSavedNotFound
	}
	delete(r.files, id)
	return nil
}

func (r *fakeFileRepo) GetByShareID(ctx context.Context, shareID string) (*UserFile, error) {
	for _, f := range r.files {
		if f.ShareID == shareID {
			cp := *f
			return &cp, nil
		}
	}
	return nil, ErrShareNotFound
}

func (r *fakeFileRepo) GetByIDAndUser(ctx context.Context, id int64, userID string) (*UserFile, error) {
	f, ok := r.files[id]
	if !ok || f.UserID != userID {
		return nil, ErrSavedNotFound
	}
	cp := *f
	return &cp, nil
}

func (r *fakeFileRepo) List(ctx context.Context, query *ListFilesQuery) ([]*UserFile, int64, error) {
	var matched []*UserFile
	for _, f := range r.files {
		if f.UserID != query.UserID {
			continue
		}
		switch {
		case query.ExpiredOnly:
			if !f.Expired(query.Now) {
				continue
			}
		case query.SharedOnly:
			if !f.IsShared || f.Expired(query.Now) {
				continue
			}
		}
		cp := *f
		matched = append(matched, &cp)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].UpdatedAt.After(matched[j].UpdatedAt)
	})

	total := int64(len(matched))
	offset := (query.Page - 1) * query.PageSize
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + query.PageSize
	if end > len(matched) {
		end = len(matched)
	}

	return matched[offset:end], total, nil
}

func (r *fakeFileRepo) UpdateSharedStatus(ctx context.Context, shareID string, isShared bool) error {
	for _, f := range r.files {
		if f.ShareID == shareID {
			f.IsShared = isShared
			return nil
		}
	}
	return ErrShareNotFound
}

type fakeTxManager struct{}

func (m *fakeTxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
