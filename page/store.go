package page

import (
	"errors"
	"fmt"

	"github.com/dszqbsm/hoopstat/dom"
)

var ErrUnknownKind = errors.New("page: unknown page kind")

// 页面类型的注册信息，Backends中第一个为默认后端
type Kind struct {
	Name     string
	Backends []dom.Backend
	Fields   []string // 展开后每行的列名，写入数据库时使用
	Run      func(body []byte, opts ...Option) (interface{}, error)
	Flatten  func(data interface{}) ([][]string, error)
}

/*
输入页面类型名、支持的后端、列名、强类型的提取函数和展开函数，输出可注册的页面类型

展开函数把提取结果转换为与列名一一对应的字符串行
*/
func NewKind[T any](name string, backends []dom.Backend, fields []string, parse ParseFunc[T], flatten func(T) [][]string) *Kind {
	return &Kind{
		Name:     name,
		Backends: backends,
		Fields:   fields,
		Run: func(body []byte, opts ...Option) (interface{}, error) {
			return New(name, backends, body, parse, opts...).Data()
		},
		Flatten: func(data interface{}) ([][]string, error) {
			v, ok := data.(T)
			if !ok {
				return nil, fmt.Errorf("page %s: unexpected result type %T", name, data)
			}
			return flatten(v), nil
		},
	}
}

// Store is a global instance
var Store = &kindStore{
	List: []*Kind{},
	Hash: map[string]*Kind{},
}

type kindStore struct {
	List []*Kind
	Hash map[string]*Kind
}

// 同名页面类型后注册的覆盖先注册的
func (s *kindStore) Add(k *Kind) {
	if old, ok := s.Hash[k.Name]; ok {
		for i, item := range s.List {
			if item == old {
				s.List[i] = k
			}
		}
		s.Hash[k.Name] = k
		return
	}
	s.Hash[k.Name] = k
	s.List = append(s.List, k)
}

func (s *kindStore) Get(name string) (*Kind, error) {
	k, ok := s.Hash[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
	return k, nil
}

/*
输入页面类型名、页面内容和可选配置，输出提取结果和错误

每次调用都新建一个解析器，结果不跨调用共享
*/
func (s *kindStore) Run(name string, body []byte, opts ...Option) (interface{}, error) {
	k, err := s.Get(name)
	if err != nil {
		return nil, err
	}
	return k.Run(body, opts...)
}
